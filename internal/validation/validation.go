// Package validation wraps go-playground/validator with the journal's custom rules and
// converts failures into apperr errors.
package validation

import (
	"errors"
	"fmt"
	"journal/internal/apperr"
	"journal/internal/entity/common"
	"journal/internal/entity/db"
	"journal/internal/entity/dto"
	"journal/internal/utils"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// New creates a validator with the entrytype and notfuture rules and the entry
// document struct-level checks registered.
func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock is New with an injectable clock for the not-in-the-future checks.
func NewWithClock(now func() time.Time) *Validator {
	v := validator.New()
	val := &Validator{v: v, now: now}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("entrytype", func(fl validator.FieldLevel) bool {
		return common.EntryType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return utils.ValidDate(fl.Field().String(), val.now())
	})
	v.RegisterStructValidation(val.entryStructLevel, db.Entry{})

	return val
}

// Validate validates a struct and returns an apperr invalid-input error listing the failing fields.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// ValidateEntry checks a stored entry document before it is written: known type,
// content shape matching the type and a datetime that is set and not in the future.
func (v *Validator) ValidateEntry(e *db.Entry) error {
	if e == nil {
		return apperr.InvalidInput("entry is nil")
	}
	return v.Validate(e)
}

// ValidateEntryInput checks a new entry request: field rules, content shape for the
// declared type and an optional datetime that is not in the future.
func (v *Validator) ValidateEntryInput(in dto.EntryInput) error {
	if err := v.Validate(in); err != nil {
		return err
	}
	fields := map[string]string{}
	if err := in.Content.Validate(in.Type.ContentKind()); err != nil {
		fields["content"] = err.Error()
	}
	if in.Datetime != nil && !utils.ValidDate(*in.Datetime, v.now()) {
		fields["datetime"] = "must not be in the future"
	}
	return fieldsError(fields)
}

// ValidateEntryUpdate checks a partial update of an entry of the given type.
func (v *Validator) ValidateEntryUpdate(in dto.EntryUpdateInput, entryType common.EntryType) error {
	if err := v.Validate(in); err != nil {
		return err
	}
	fields := map[string]string{}
	if in.Content != nil {
		if err := in.Content.Validate(entryType.ContentKind()); err != nil {
			fields["content"] = err.Error()
		}
	}
	if in.Datetime != nil && !utils.ValidDate(*in.Datetime, v.now()) {
		fields["datetime"] = "must not be in the future"
	}
	return fieldsError(fields)
}

func fieldsError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	parts := make([]string, 0, len(fields))
	for _, name := range []string{"content", "datetime"} {
		if msg, ok := fields[name]; ok {
			parts = append(parts, name+" "+msg)
		}
	}
	return apperr.InvalidInput("validation failed: " + strings.Join(parts, "; ")).WithDetails(fields)
}

func (v *Validator) entryStructLevel(sl validator.StructLevel) {
	e := sl.Current().Interface().(db.Entry)

	if e.Type.Valid() {
		if err := e.Content.Validate(e.Type.ContentKind()); err != nil {
			sl.ReportError(e.Content, "content", "Content", "contentshape", e.Type.ContentKind().String())
		}
	}
	if !utils.ValidDate(e.Datetime, v.now()) {
		sl.ReportError(e.Datetime, "datetime", "Datetime", "notfuture", "")
	}
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperr.Wrap(apperr.CodeInvalidInput, "validation failed", err)
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	parts := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msg := friendlyMessage(e)
		fieldErrors[e.Field()] = msg
		parts = append(parts, e.Field()+" "+msg)
	}

	return apperr.InvalidInput("validation failed: " + strings.Join(parts, "; ")).WithDetails(fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "uuid":
		return "must be a valid identifier"
	case "entrytype":
		return "must be one of: mood, journal, gratitude"
	case "notfuture":
		return "must be a valid ISO-8601 date that is not in the future"
	case "contentshape":
		if e.Param() == common.ContentList.String() {
			return "must be a non-empty list of non-empty strings"
		}
		return "must be a non-empty string"
	default:
		return "is invalid"
	}
}
