package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID — идентификатор сущности в той форме, в какой его прислал API: число или строка.
// Сравнение идет по строковому представлению.
type ID struct {
	value   string
	numeric bool
}

func NumericID(n int64) ID {
	return ID{value: strconv.FormatInt(n, 10), numeric: true}
}

func StringID(s string) ID {
	return ID{value: s}
}

// ParseID разбирает идентификатор из пути или формы: целое число становится числовым ID.
func ParseID(s string) ID {
	if s == "" {
		return ID{}
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID{value: s, numeric: true}
	}
	return ID{value: s}
}

func (id ID) String() string { return id.value }

func (id ID) IsZero() bool { return id.value == "" }

func (id ID) Equal(other ID) bool { return id.value == other.value }

func (id ID) MarshalJSON() ([]byte, error) {
	switch {
	case id.value == "":
		return []byte("null"), nil
	case id.numeric:
		return []byte(id.value), nil
	default:
		return json.Marshal(id.value)
	}
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ID{}
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID{value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a number or a string: %w", err)
	}
	*id = ID{value: n.String(), numeric: true}
	return nil
}

// NumberText — значение числового поля формы: UI может прислать и число, и строку из input.
type NumberText string

func (n *NumberText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberText(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected number or string: %w", err)
	}
	*n = NumberText(num.String())
	return nil
}

// Float разбирает текст так же, как поле ввода числа: пустая строка — 0,
// нечисловой текст — ok=false.
func (n NumberText) Float() (float64, bool) {
	s := string(bytes.TrimSpace([]byte(n)))
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
