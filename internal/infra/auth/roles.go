package auth

import "strings"

// RoleAdmin — роль, открывающая мутации в консоли.
const RoleAdmin = "admin"

// LegacyRoleClaim — claim-type URI, который выдают старые .NET-бэкенды.
// Оставлен для совместимости: неизвестно, шлет ли его текущий API.
const LegacyRoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

// RoleRule — чистая функция извлечения ролей из одного места в claims.
type RoleRule func(Claims) []string

// ClaimRule читает claim по ключу: строку или массив (нестроковые элементы отбрасываются).
func ClaimRule(key string) RoleRule {
	return func(c Claims) []string {
		return claimAsStrings(c[key])
	}
}

// DefaultRoleRules — порядок обхода: role, roles, legacy URI. Все результаты объединяются.
var DefaultRoleRules = []RoleRule{
	ClaimRule("role"),
	ClaimRule("roles"),
	ClaimRule(LegacyRoleClaim),
}

// Resolver сводит роли из всех правил в одно множество.
// Без состояния: вызывается на каждое решение о гейтинге.
type Resolver struct {
	rules []RoleRule
}

func NewResolver(rules ...RoleRule) Resolver {
	if len(rules) == 0 {
		rules = DefaultRoleRules
	}
	return Resolver{rules: rules}
}

// Roles возвращает объединение ролей в порядке правил, без дублей.
func (r Resolver) Roles(claims Claims) []string {
	if claims == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, rule := range r.rules {
		for _, role := range rule(claims) {
			if _, ok := seen[role]; ok {
				continue
			}
			seen[role] = struct{}{}
			out = append(out, role)
		}
	}
	return out
}

// IsAdmin истинно, если хотя бы одна роль в нижнем регистре равна "admin".
func (r Resolver) IsAdmin(claims Claims) bool {
	for _, role := range r.Roles(claims) {
		if strings.ToLower(role) == RoleAdmin {
			return true
		}
	}
	return false
}

// HasAdminRole — декодирование и проверка одним вызовом с правилами по умолчанию.
func HasAdminRole(token string) bool {
	claims, ok := DecodeClaims(token)
	if !ok {
		return false
	}
	return NewResolver().IsAdmin(claims)
}

func claimAsStrings(v any) []string {
	switch typed := v.(type) {
	case string:
		if typed == "" {
			return nil
		}
		return []string{typed}
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
