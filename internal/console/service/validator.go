package service

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/xela07ax/inventory-console/internal/domain"
)

// ValidationError — ошибка формы; Message показывается оператору как есть.
type ValidationError struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string { return e.Message }

// Validator — обертка над validator/v10 с ленивой инициализацией.
type Validator struct {
	once     sync.Once
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{}
}

// mustRegister паникует, если правило не зарегистрировалось.
func mustRegister(validate *validator.Validate, tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("service: register validation %q: %v", tag, err))
	}
}

func (v *Validator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New(validator.WithRequiredStructEnabled())

		// ID валидируется как строка: "required" значит "выбран"
		v.validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if id, ok := field.Interface().(domain.ID); ok {
				return id.String()
			}
			return nil
		}, domain.ID{})

		// amount — конечное неотрицательное число; пустой ввод считается нулем
		mustRegister(v.validate, "amount", func(fl validator.FieldLevel) bool {
			f, ok := domain.NumberText(fl.Field().String()).Float()
			return ok && !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
		})

		v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// Check проверяет форму; любое нарушение превращается в одно сообщение формы.
func (v *Validator) Check(form any, message string) error {
	v.lazyinit()

	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Message: message}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Message: message, Fields: fields}
}
