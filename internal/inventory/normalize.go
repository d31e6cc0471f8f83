package inventory

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// listKeys — поля-обертки, в которых разные версии API кладут массив.
var listKeys = []string{"items", "data", "value", "results"}

// totalKeys проверяются по порядку, побеждает первое числовое значение.
var totalKeys = []string{"totalCount", "total", "count"}

// NormalizeList приводит ответ-список к плоской последовательности:
// голый массив или объект с массивом в одном из listKeys. Все остальное — пустой список.
func NormalizeList(v any) []any {
	switch data := v.(type) {
	case []any:
		return data
	case map[string]any:
		for _, key := range listKeys {
			if items, ok := data[key].([]any); ok {
				return items
			}
		}
	}
	return []any{}
}

// ExtractTotalCount достает общее количество для пагинации.
func ExtractTotalCount(v any) (int, bool) {
	record, ok := v.(map[string]any)
	if !ok {
		return 0, false
	}
	for _, key := range totalKeys {
		if n, ok := record[key].(float64); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	}
	return 0, false
}

// decodeList раскладывает нормализованный список в типизированный срез.
// Каждая строка разбирается отдельно: поле неожиданного типа не роняет список.
func decodeList[T any](v any) ([]T, error) {
	items := NormalizeList(v)
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, decodeRecord[T](item))
	}
	return out, nil
}

// decodeRecord сначала пробует строку целиком, затем по одному полю.
// Число в строке и строка на месте числа приводятся, неприводимое поле пропускается.
func decodeRecord[T any](item any) T {
	var whole T
	if b, err := json.Marshal(item); err == nil && json.Unmarshal(b, &whole) == nil {
		return whole
	}

	var rec T
	fields, ok := item.(map[string]any)
	if !ok {
		return rec
	}
	keep := make(map[string]any, len(fields))
	for key, val := range fields {
		for _, candidate := range coerceCandidates(val) {
			if fieldDecodes[T](key, candidate) {
				keep[key] = candidate
				break
			}
		}
	}
	if b, err := json.Marshal(keep); err == nil {
		_ = json.Unmarshal(b, &rec)
	}
	return rec
}

func coerceCandidates(val any) []any {
	switch v := val.(type) {
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return []any{v, n}
		}
	case float64:
		return []any{v, strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return []any{val}
}

func fieldDecodes[T any](key string, val any) bool {
	b, err := json.Marshal(map[string]any{key: val})
	if err != nil {
		return false
	}
	var rec T
	return json.Unmarshal(b, &rec) == nil
}
