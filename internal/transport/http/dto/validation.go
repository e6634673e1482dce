package dto

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/baechuer/inventory-service/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report json field names in errors, not Go struct field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateStruct runs tag validation and converts the first failure into a
// domain error so every endpoint reports validation problems the same way.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return domain.ErrInvalidJSON(err)
	}

	fe := verrs[0]
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(field)
	case "email":
		return domain.ErrInvalidField(field, "invalid format")
	case "min":
		if field == "password" {
			return domain.ErrWeakPassword(fmt.Sprintf("min length %s", fe.Param()))
		}
		return domain.ErrInvalidField(field, fmt.Sprintf("must be at least %s characters", fe.Param()))
	case "max":
		return domain.ErrInvalidField(field, fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "gte":
		return domain.ErrInvalidField(field, fmt.Sprintf("must be >= %s", fe.Param()))
	case "url":
		return domain.ErrInvalidField(field, "invalid url")
	default:
		return domain.ErrInvalidField(field, "invalid")
	}
}
