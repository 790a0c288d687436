package project

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	MaxTags      = 10
	MaxTagLength = 20
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single rejected submission field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every rejected field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Details returns the field errors keyed by field name.
func (e *ValidationError) Details() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, exists := out[f.Field]; !exists {
			out[f.Field] = f.Message
		}
	}
	return out
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return Category(fl.Field().String()).Valid()
		})
	})
	return validate
}

// Normalize trims free-text fields and tags of a submission.
func (r CreateRequest) Normalize() CreateRequest {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = Category(strings.TrimSpace(string(r.Category)))
	r.Image = strings.TrimSpace(r.Image)
	r.DemoLink = strings.TrimSpace(r.DemoLink)
	r.VideoLink = strings.TrimSpace(r.VideoLink)
	if r.Tags != nil {
		tags := make([]string, 0, len(r.Tags))
		for _, tag := range r.Tags {
			tags = append(tags, strings.TrimSpace(tag))
		}
		r.Tags = tags
	}
	return r
}

// ValidateCreateInput checks a normalised submission against the upload rules.
func ValidateCreateInput(req CreateRequest) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		field, _, _ := strings.Cut(fe.Field(), "[")
		out.Fields = append(out.Fields, FieldError{
			Field:   field,
			Message: fieldMessage(field, fe),
		})
	}
	return out
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch field {
	case "title":
		switch fe.Tag() {
		case "required":
			return "Project title is required"
		case "min":
			return "Title must be at least 10 characters"
		default:
			return "Title must be at most 100 characters"
		}
	case "description":
		switch fe.Tag() {
		case "required":
			return "Project description is required"
		case "min":
			return "Description must be at least 50 characters"
		default:
			return "Description must be at most 500 characters"
		}
	case "category":
		return "Please select a category"
	case "image":
		return "Cover image is required"
	case "demo_link", "video_link", "gallery":
		return "Please enter a valid URL"
	case "tags":
		switch fe.Tag() {
		case "max":
			if fe.Kind() == reflect.Slice {
				return fmt.Sprintf("Maximum %d tags allowed", MaxTags)
			}
			return fmt.Sprintf("Tag must be %d characters or less", MaxTagLength)
		case "unique":
			return "This tag is already added"
		default:
			return "Tags must not be empty"
		}
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
