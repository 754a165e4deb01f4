package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// HackType determines the required submission payload and the shape of the
// evaluation result.
type HackType string

const (
	TypeML   HackType = "ml_hackathon"
	TypeCode HackType = "codeathon"
	TypeOpen HackType = "hackathon"
)

var ErrUnknownHackType = errors.New("unknown hackathon type")

func ParseHackType(s string) (HackType, error) {
	switch HackType(s) {
	case TypeML, TypeCode, TypeOpen:
		return HackType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownHackType, s)
}

type SubmissionStatus string

const (
	StatusNotSubmitted SubmissionStatus = "not_submitted"
	StatusSubmitted    SubmissionStatus = "submitted"
	StatusEvaluated    SubmissionStatus = "evaluated"
)

// The lifecycle is append-only: a submission never regresses.
var validTransitions = map[SubmissionStatus]SubmissionStatus{
	StatusNotSubmitted: StatusSubmitted,
	StatusSubmitted:    StatusEvaluated,
}

func (s SubmissionStatus) CanTransition(to SubmissionStatus) bool {
	return validTransitions[s] == to
}

type TransitionError struct {
	From SubmissionStatus
	To   SubmissionStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid submission status transition: %s -> %s", e.From, e.To)
}

type Hackathon struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        HackType  `json:"hackathon_type"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   string    `json:"created_by"`
}

// FilePart is a file staged for a multipart submission upload.
type FilePart struct {
	Filename string
	Content  []byte
}

// Payload carries the type-specific submission inputs. Which fields are
// meaningful is decided by the hackathon's HackType; see workflow.Validate.
type Payload struct {
	ModelFile  *FilePart
	CodeFile   *FilePart
	GithubURL  string
	Dockerfile *FilePart
}

type Submission struct {
	ID            string            `json:"_id"`
	HackathonID   string            `json:"hackathon_id"`
	Participant   string            `json:"participant"`
	Type          HackType          `json:"hackathon_type"`
	Filename      string            `json:"submission_filename"`
	GithubURL     string            `json:"github_url"`
	Status        SubmissionStatus  `json:"status"`
	SubmittedAt   time.Time         `json:"submitted_at"`
	AssignedJudge string            `json:"assigned_judge"`
	Result        *EvaluationResult `json:"evaluation_result"`
}

// Advance moves the submission along the lifecycle, rejecting any edge that
// is not not_submitted -> submitted -> evaluated.
func (s *Submission) Advance(to SubmissionStatus) error {
	if !s.Status.CanTransition(to) {
		return &TransitionError{From: s.Status, To: to}
	}
	s.Status = to
	return nil
}

// AttachResult records an evaluation result. The result's variant must match
// the submission's type and the submission must currently be submitted.
func (s *Submission) AttachResult(r *EvaluationResult) error {
	if r == nil || r.Type != s.Type {
		return ErrSchemaMismatch
	}
	if err := s.Advance(StatusEvaluated); err != nil {
		return err
	}
	s.Result = r
	return nil
}

// UnmarshalJSON decodes the platform's submission document. The evaluation
// result has no discriminant of its own on the wire, so it is decoded against
// the submission's declared type, and the result-iff-evaluated invariant is
// checked here rather than trusted.
func (s *Submission) UnmarshalJSON(data []byte) error {
	type alias Submission
	aux := struct {
		*alias
		Result json.RawMessage `json:"evaluation_result"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if s.Status == "" {
		s.Status = StatusNotSubmitted
	}
	if len(aux.Result) == 0 || string(aux.Result) == "null" {
		if s.Status == StatusEvaluated {
			return fmt.Errorf("submission %s is evaluated but carries no result", s.ID)
		}
		s.Result = nil
		return nil
	}
	if s.Status != StatusEvaluated {
		return fmt.Errorf("submission %s carries a result but is %s", s.ID, s.Status)
	}
	result, err := DecodeResult(s.Type, "", aux.Result)
	if err != nil {
		return err
	}
	s.Result = result
	return nil
}

// ErrSchemaMismatch reports an evaluation result whose variant does not match
// the hackathon type it is applied to.
var ErrSchemaMismatch = errors.New("evaluation result does not match hackathon type")

type MLResult struct {
	Accuracy           float64 `json:"accuracy"`
	Precision          float64 `json:"precision"`
	Recall             float64 `json:"recall"`
	F1Score            float64 `json:"f1_score"`
	FinalCombinedScore float64 `json:"final_combined_score"`
}

type CodeResult struct {
	TestCasesPassed int         `json:"test_cases_passed"`
	Performance     Performance `json:"performance"`
	FinalScore      float64     `json:"final_score"`
}

type OpenResult struct {
	DockerValid     bool    `json:"docker_valid"`
	DeploymentReady bool    `json:"deployment_ready"`
	FinalScore      float64 `json:"final_score"`
}

// Performance accepts either a JSON string ("fast") or a number; the platform
// has emitted both.
type Performance string

func (p *Performance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Performance(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("performance is neither string nor number: %s", data)
	}
	*p = Performance(strconv.FormatFloat(f, 'f', 2, 64))
	return nil
}

func (p Performance) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// EvaluationResult is a tagged union over the three result schemas. Exactly
// one variant pointer is set, and Type names it.
type EvaluationResult struct {
	Type HackType
	ML   *MLResult
	Code *CodeResult
	Open *OpenResult
}

func (r *EvaluationResult) MarshalJSON() ([]byte, error) {
	switch r.Type {
	case TypeML:
		return json.Marshal(r.ML)
	case TypeCode:
		return json.Marshal(r.Code)
	case TypeOpen:
		return json.Marshal(r.Open)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHackType, r.Type)
}

// resultKeys lists the fields each variant requires on the wire.
var resultKeys = map[HackType][]string{
	TypeML:   {"accuracy", "precision", "recall", "f1_score", "final_combined_score"},
	TypeCode: {"test_cases_passed", "performance", "final_score"},
	TypeOpen: {"docker_valid", "deployment_ready", "final_score"},
}

// DecodeResult decodes a raw evaluation result against the declared hackathon
// type. tag, when non-empty, is the discriminant the server attached to the
// result; a disagreement with declared is a schema mismatch, as is any
// missing required field. Nothing is decoded on mismatch.
func DecodeResult(declared, tag HackType, raw []byte) (*EvaluationResult, error) {
	if _, err := ParseHackType(string(declared)); err != nil {
		return nil, err
	}
	if tag != "" && tag != declared {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrSchemaMismatch, tag, declared)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("malformed evaluation result: %w", err)
	}
	for _, key := range resultKeys[declared] {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrSchemaMismatch, key)
		}
	}

	result := &EvaluationResult{Type: declared}
	var err error
	switch declared {
	case TypeML:
		result.ML = &MLResult{}
		err = json.Unmarshal(raw, result.ML)
	case TypeCode:
		result.Code = &CodeResult{}
		err = json.Unmarshal(raw, result.Code)
	case TypeOpen:
		result.Open = &OpenResult{}
		err = json.Unmarshal(raw, result.Open)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return result, nil
}
