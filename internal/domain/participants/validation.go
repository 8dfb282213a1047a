package participants

import (
	"strings"

	"github.com/gatherkit/server/internal/domain/validate"
)

// CreateInput is the POST /participants request body.
type CreateInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	EventID string `json:"eventId" validate:"required,ulid"`
}

// UpdateInput is the PATCH /participants/{id} request body. All fields
// are optional; absent fields leave the stored value untouched.
type UpdateInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Email   *string `json:"email" validate:"omitempty,email"`
	EventID *string `json:"eventId" validate:"omitempty,ulid"`
}

// ValidateCreate checks the create payload and returns normalized
// create params, or validate.FieldErrors describing every failure.
func ValidateCreate(input CreateInput) (CreateParams, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.EventID = strings.TrimSpace(input.EventID)

	if err := validate.Struct(input); err != nil {
		return CreateParams{}, err
	}

	return CreateParams{
		Name:    input.Name,
		Email:   input.Email,
		EventID: strings.ToUpper(input.EventID),
	}, nil
}

// ValidateUpdate checks the partial update payload and returns update
// params with only the supplied fields set.
func ValidateUpdate(input UpdateInput) (UpdateParams, error) {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if input.Email != nil {
		trimmed := strings.TrimSpace(*input.Email)
		input.Email = &trimmed
	}
	if input.EventID != nil {
		normalized := strings.ToUpper(strings.TrimSpace(*input.EventID))
		input.EventID = &normalized
	}

	if err := validate.Struct(input); err != nil {
		return UpdateParams{}, err
	}

	return UpdateParams{
		Name:    input.Name,
		Email:   input.Email,
		EventID: input.EventID,
	}, nil
}
