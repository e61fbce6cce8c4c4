package tasks

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskrank-backend/internal/scoring"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json field names instead of Go struct fields
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseBatch validates a submitted batch and converts it into immutable
// scoring tasks. Tasks without an id get a 1-based id from input order.
// The first invalid field or unparseable due date fails the whole batch.
func ParseBatch(inputs []TaskInput) ([]scoring.Task, error) {
	batch := make([]scoring.Task, 0, len(inputs))
	for i, in := range inputs {
		t, err := parseOne(in, i+1)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		batch = append(batch, t)
	}
	return batch, nil
}

func parseOne(in TaskInput, fallbackID int) (scoring.Task, error) {
	if err := validate.Struct(in); err != nil {
		return scoring.Task{}, errors.New(validationMessage(err))
	}

	due, err := scoring.NormalizeDate(in.DueDate)
	if err != nil {
		return scoring.Task{}, err
	}

	id := in.ID
	if id == 0 {
		id = fallbackID
	}

	return scoring.Task{
		ID:             id,
		Title:          in.Title,
		Due:            due,
		EstimatedHours: in.EstimatedHours,
		Importance:     in.Importance,
		Dependencies:   in.Dependencies,
	}, nil
}

// validationMessage turns the first field error into a client-facing line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fieldMessage(verrs[0])
	}
	return err.Error()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
