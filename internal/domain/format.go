package domain

import (
	"strconv"
	"time"
)

const noValue = "-"

// FormatPrice — цена с двумя знаками или "-".
func FormatPrice(p *float64) string {
	if p == nil {
		return noValue
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}

// FormatQuantity — количество как есть или "-".
func FormatQuantity(q *float64) string {
	if q == nil {
		return noValue
	}
	return strconv.FormatFloat(*q, 'f', -1, 64)
}

// FormatDate — YYYY-MM-DD; непарсибельное значение возвращается как есть, пустое — "-".
func FormatDate(value string) string {
	if value == "" {
		return noValue
	}
	t, ok := ParseTime(value)
	if !ok {
		return value
	}
	return t.Format(time.DateOnly)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999", // ISO без зоны, как отдает .NET
	time.DateTime,
	time.DateOnly,
}

// ParseTime понимает форматы дат, которые встречаются в ответах API.
func ParseTime(value string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// UnixMilliOrZero — метка времени для сортировки; пустая или битая дата — 0.
func UnixMilliOrZero(value string) int64 {
	if value == "" {
		return 0
	}
	t, ok := ParseTime(value)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}
