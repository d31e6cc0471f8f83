package infra

import "fmt"

const (
	// StoreNamespace Базовый префикс для изоляции данных консоли в общих хранилищах
	StoreNamespace = "inventory-console"
)

// Ключ слота с токеном сессии. Одинаков для всех бэкендов.
const (
	TokenKey = "auth_token"
)

// Таблицы Postgres
const (
	PostgresTableKV       = "console_kv"
	PostgresTableActivity = "console_activity"
)

// NamespacedKey строит ключ Redis вида "<namespace>:<key>"
func NamespacedKey(namespace, key string) string {
	if namespace == "" {
		namespace = StoreNamespace
	}
	return fmt.Sprintf("%s:%s", namespace, key)
}
