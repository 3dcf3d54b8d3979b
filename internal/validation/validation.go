// Package validation checks product payloads before they reach storage.
//
// Rules live as struct tags on models.ProductInput and are enforced by
// go-playground/validator. Violations come back as Errors, one entry per
// offending field, with the message clients see.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"productapi/internal/models"

	"github.com/go-playground/validator/v10"
)

// phonePattern is a two digit prefix, a hyphen and ten digits.
var phonePattern = regexp.MustCompile(`^\d{2}-\d{10}$`)

// FieldError describes one violated field rule.
type FieldError struct {
	Field   string      `json:"field"`
	Rule    string      `json:"rule"`
	Value   interface{} `json:"value"`
	Message string      `json:"message"`
}

// Errors is the list of violations found on a payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "product validation failed: " + strings.Join(parts, ", ")
}

// Validator validates product payloads.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the product rules registered.
func New() *Validator {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// RegisterValidation only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Product trims and validates the input and returns the accepted record.
// The returned product has no ID or CreatedAt; storage assigns those.
func (v *Validator) Product(in models.ProductInput) (*models.Product, error) {
	in.Title = strings.TrimSpace(in.Title)

	if err := v.validate.Struct(in); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("failed to validate product: %w", err)
		}
		return nil, toErrors(validationErrors)
	}

	return &models.Product{
		Title:       in.Title,
		Price:       *in.Price,
		Rating:      *in.Rating,
		Description: in.Description,
		Phone:       in.Phone,
	}, nil
}

func toErrors(validationErrors validator.ValidationErrors) Errors {
	out := make(Errors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		value := fe.Value()
		if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				value = nil
			} else {
				value = rv.Elem().Interface()
			}
		}
		out = append(out, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Value:   value,
			Message: message(fe.Field(), fe.Tag(), value),
		})
	}
	return out
}
