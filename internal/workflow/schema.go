package workflow

import (
	"fmt"

	"github.com/hacklens/hacklens-go/internal/models"
)

// Schema names the form fields a hackathon type requires of a submission.
// Field names are the platform's multipart part names.
type Schema struct {
	Required []string
	Optional []string
}

var payloadSchemas = map[models.HackType]Schema{
	models.TypeML:   {Required: []string{"model_file"}},
	models.TypeCode: {Required: []string{"code_file"}},
	models.TypeOpen: {Required: []string{"github_url"}, Optional: []string{"dockerfile"}},
}

func RequiredPayloadShape(hackType models.HackType) (Schema, error) {
	schema, ok := payloadSchemas[hackType]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %q", models.ErrUnknownHackType, hackType)
	}
	return schema, nil
}

// MissingFieldError reports the first required submission field that is
// absent. Validation fails closed: no network call is made for an incomplete
// payload.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func payloadHas(p models.Payload, field string) bool {
	switch field {
	case "model_file":
		return p.ModelFile != nil
	case "code_file":
		return p.CodeFile != nil
	case "github_url":
		return p.GithubURL != ""
	case "dockerfile":
		return p.Dockerfile != nil
	}
	return false
}

// Validate checks a candidate payload against the type's schema, surfacing
// the first missing required field.
func Validate(hackType models.HackType, payload models.Payload) error {
	schema, err := RequiredPayloadShape(hackType)
	if err != nil {
		return err
	}
	for _, field := range schema.Required {
		if !payloadHas(payload, field) {
			return &MissingFieldError{Field: field}
		}
	}
	return nil
}
