// Package dto содержит модели запросов и ответов HTTP API и их структурную валидацию.
package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"filmorate/internal/filmorate/domain/entities"
)

// DateLayout - формат дат в API.
const DateLayout = time.DateOnly

// Теги пользовательских правил валидации.
const (
	tagNotBlank     = "notblank"
	tagNoWhitespace = "nowhitespace"
	tagDate         = "isodate"
	tagCinemaEra    = "cinemaera"
	tagNotFuture    = "notfuture"
)

// ErrValidation оборачивает все ошибки структурной валидации.
var ErrValidation = errors.New("validation failed")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, tagNotBlank, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, tagNoWhitespace, func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})
	mustRegister(v, tagDate, func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	mustRegister(v, tagCinemaEra, func(fl validator.FieldLevel) bool {
		date, err := ParseDate(fl.Field().String())
		return err == nil && !date.Before(entities.CinemaBirthday)
	})
	mustRegister(v, tagNotFuture, func(fl validator.FieldLevel) bool {
		date, err := ParseDate(fl.Field().String())
		return err == nil && !date.After(today())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// ParseDate разбирает дату формата YYYY-MM-DD в UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// FormatDate форматирует дату для ответа. Нулевая дата превращается в пустую строку.
func FormatDate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayout)
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// validateStruct проверяет запрос и превращает ошибки валидатора в одно сообщение.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", tagNotBlank:
		return field + " must not be blank"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	case tagNoWhitespace:
		return field + " must not contain whitespace"
	case tagDate:
		return field + " must be a date in YYYY-MM-DD format"
	case tagCinemaEra:
		return field + " must not be before " + entities.CinemaBirthday.Format(DateLayout)
	case tagNotFuture:
		return field + " must not be in the future"
	default:
		return fmt.Sprintf("%s failed %q check", field, fe.Tag())
	}
}
