package core

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"golfphysics/internal/types"
)

// Validator wraps go-playground/validator and translates tag failures into
// structured AppErrors with per-field details.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a new Validator. Field names in error details use the
// JSON tag of the struct field rather than the Go field name so that clients
// can map failures back to their request payloads.
func NewValidator(logger *slog.Logger) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{
		validate: v,
		logger:   logger,
	}
}

// ValidateStruct validates dst against its struct tags. On failure it returns
// a *types.AppError with code "validation_missing_field" for required-tag
// failures or a payload-specific code otherwise, carrying a details map of
// field name to human-readable constraint description.
func (v *Validator) ValidateStruct(dst interface{}) error {
	err := v.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError (nil pointer, non-struct); programmer error.
		return types.NewAppError(types.ErrCodeInternalUnexpected, "validation failed", err)
	}

	details := make(map[string]any, len(verrs))
	code := types.ErrCodeValidationBody
	for _, fe := range verrs {
		details[fe.Field()] = describeFailure(fe)
		if fe.Tag() == "required" {
			code = types.ErrCodeValidationMissingField
		}
	}

	return types.NewAppErrorWithDetails(code, "request validation failed", nil, details)
}

// describeFailure renders a single field failure as a short human-readable
// constraint description.
func describeFailure(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " characters"
	case "max":
		return "must have at most " + fe.Param() + " characters"
	case "latitude":
		return "must be a valid latitude"
	case "longitude":
		return "must be a valid longitude"
	default:
		return "failed constraint: " + fe.Tag()
	}
}
