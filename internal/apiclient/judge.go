package apiclient

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/hacklens/hacklens-go/internal/models"
)

// EvalEnvelope is the raw evaluation response. Result stays undecoded here:
// the workflow layer decodes it against the submission's declared type so a
// variant mismatch is caught before anything renders.
type EvalEnvelope struct {
	Message string          `json:"message"`
	Type    models.HackType `json:"hackathon_type"`
	Result  json.RawMessage `json:"result"`
}

// AssignedSubmissions lists the submissions assigned to the current judge.
func (c *Client) AssignedSubmissions(ctx context.Context) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := c.getJSON(ctx, "/judge/assigned", true, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// AllSubmissions lists every submission on the platform. Admin only.
func (c *Client) AllSubmissions(ctx context.Context) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := c.getJSON(ctx, "/judge/submissions", true, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// AssignJudge routes a submission to a judge's queue.
func (c *Client) AssignJudge(ctx context.Context, submissionID, judgeUsername string) error {
	path := "/judge/assign_judge/" + submissionID + "?judge_username=" + url.QueryEscape(judgeUsername)
	return c.postJSON(ctx, path, true, nil, nil)
}

// Evaluate asks the platform to run evaluation on a submission. Judge only.
func (c *Client) Evaluate(ctx context.Context, submissionID string) (*EvalEnvelope, error) {
	var envelope EvalEnvelope
	if err := c.postJSON(ctx, "/judge/evaluate/"+submissionID, true, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}
