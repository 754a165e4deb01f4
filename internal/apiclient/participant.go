package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/hacklens/hacklens-go/internal/models"
)

type SubmitResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// RegisteredHackathon is a hackathon the participant registered for, with
// their submission attached when one exists.
type RegisteredHackathon struct {
	models.Hackathon
	Submission *models.Submission `json:"submission"`
}

// SubmissionStatus returns the participant's submission for a hackathon, or
// nil when nothing has been submitted yet.
func (c *Client) SubmissionStatus(ctx context.Context, hackathonID string) (*models.Submission, error) {
	var out struct {
		Submitted  bool               `json:"submitted"`
		Submission *models.Submission `json:"submission"`
	}
	if err := c.getJSON(ctx, "/participant/submission_status/"+hackathonID, true, &out); err != nil {
		return nil, err
	}
	if !out.Submitted {
		return nil, nil
	}
	return out.Submission, nil
}

// Submit uploads the type-specific submission payload as a multipart form.
// The caller validates the payload against the hackathon type first; this
// only marshals what it is given. A duplicate submission surfaces as
// ErrConflict.
func (c *Client) Submit(ctx context.Context, hackathonID string, hackType models.HackType, payload models.Payload) (*SubmitResponse, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("hackathon_type", string(hackType)); err != nil {
		return nil, err
	}

	writePart := func(field string, part *models.FilePart) error {
		if part == nil {
			return nil
		}
		w, err := form.CreateFormFile(field, part.Filename)
		if err != nil {
			return err
		}
		_, err = w.Write(part.Content)
		return err
	}

	var err error
	switch hackType {
	case models.TypeML:
		err = writePart("model_file", payload.ModelFile)
	case models.TypeCode:
		err = writePart("code_file", payload.CodeFile)
	case models.TypeOpen:
		if payload.GithubURL != "" {
			err = form.WriteField("github_url", payload.GithubURL)
		}
		if err == nil {
			err = writePart("dockerfile", payload.Dockerfile)
		}
	default:
		err = fmt.Errorf("%w: %q", models.ErrUnknownHackType, hackType)
	}
	if err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	var out SubmitResponse
	if err := c.do(ctx, http.MethodPost, "/participant/submit/"+hackathonID, &buf, form.FormDataContentType(), true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MySubmissions lists every submission the current participant has made.
func (c *Client) MySubmissions(ctx context.Context) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := c.getJSON(ctx, "/participant/submissions", true, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// MyHackathons lists the hackathons the current participant registered for,
// with submissions attached where present.
func (c *Client) MyHackathons(ctx context.Context) ([]RegisteredHackathon, error) {
	var hackathons []RegisteredHackathon
	if err := c.getJSON(ctx, "/participant/hackathons", true, &hackathons); err != nil {
		return nil, err
	}
	return hackathons, nil
}
