package views

import "github.com/xela07ax/inventory-console/internal/domain"

// RemoveByID убирает строку из удерживаемого списка после успешного удаления,
// без повторной загрузки. Пустой ID ничего не удаляет.
func RemoveByID[T any](items []T, id domain.ID, idOf func(T) domain.ID) []T {
	if id.IsZero() {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item).Equal(id) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func ProductID(p domain.Product) domain.ID { return p.ID }

func StoreID(s domain.Store) domain.ID { return s.ID }
