package events

import (
	"errors"
	"strings"
	"time"

	"github.com/gatherkit/server/internal/domain/validate"
)

// dateTimeLayouts are accepted input formats for the dateTime field,
// tried in order.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CreateInput is the POST /events request body. Description is a
// pointer so a missing key can be told apart from an empty string: the
// key is mandatory, the empty string is a valid value.
type CreateInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Location    string  `json:"location" validate:"required"`
	DateTime    string  `json:"dateTime" validate:"required"`
}

// UpdateInput is the PATCH /events/{id} request body. dateTime is not
// accepted: updates always overwrite it with the current time.
type UpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Location    *string `json:"location" validate:"omitempty,min=1"`
}

// ValidateCreate checks the create payload, coerces dateTime to a
// timestamp, and returns create params or validate.FieldErrors.
func ValidateCreate(input CreateInput) (CreateParams, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Location = strings.TrimSpace(input.Location)
	input.DateTime = strings.TrimSpace(input.DateTime)

	fields := validate.FieldErrors{}
	if err := validate.Struct(input); err != nil {
		if !errors.As(err, &fields) {
			return CreateParams{}, err
		}
	}
	if input.Description == nil {
		fields["description"] = "is required"
	}
	if len(fields) > 0 {
		return CreateParams{}, fields
	}

	dateTime, ok := parseDateTime(input.DateTime)
	if !ok {
		return CreateParams{}, validate.FieldErrors{"dateTime": "must be a valid timestamp"}
	}

	return CreateParams{
		Name:        input.Name,
		Description: *input.Description,
		Location:    input.Location,
		DateTime:    dateTime,
	}, nil
}

// ValidateUpdate checks the partial update payload.
func ValidateUpdate(input UpdateInput) (UpdateParams, error) {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if input.Location != nil {
		trimmed := strings.TrimSpace(*input.Location)
		input.Location = &trimmed
	}

	if err := validate.Struct(input); err != nil {
		return UpdateParams{}, err
	}

	return UpdateParams{
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
	}, nil
}

func parseDateTime(value string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
