package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hacklens/hacklens-go/internal/apiclient"
	"github.com/hacklens/hacklens-go/internal/identity"
	"github.com/hacklens/hacklens-go/internal/models"
	"github.com/hacklens/hacklens-go/internal/phase"
)

var (
	// ErrUnauthorized rejects an action locally before any network call when
	// the role mismatch is already visible client-side.
	ErrUnauthorized = errors.New("action not permitted for this identity")

	// ErrSubmitInFlight rejects a second submit while one is still running;
	// the UI disables the action for the duration.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrRegistrationClosed rejects registration once the hackathon has
	// ended.
	ErrRegistrationClosed = errors.New("registration closed: hackathon has ended")
)

// Workflow tracks one participant's submission lifecycle against one
// hackathon: registration, payload validation, submit, and the resulting
// status. State lives for the consuming view's lifetime only; the server
// stays the source of truth.
type Workflow struct {
	api *apiclient.Client

	mu       sync.Mutex
	inFlight bool

	HackathonID string
	Hackathon   *models.Hackathon
	Submission  *models.Submission
	Registered  bool
}

func New(api *apiclient.Client, hackathonID string) *Workflow {
	return &Workflow{api: api, HackathonID: hackathonID}
}

// Load fetches the hackathon and, for participants, their registration and
// any existing submission. An existing submission means the submit surface is
// read-only; that is the server's "already submitted" answer ahead of time,
// not a failure.
func (w *Workflow) Load(ctx context.Context, id *identity.Identity) error {
	hackathon, err := w.api.HackathonByID(ctx, w.HackathonID)
	if err != nil {
		return err
	}
	w.Hackathon = hackathon

	if id == nil || id.Role != identity.RoleParticipant {
		return nil
	}

	registered, err := w.api.IsRegistered(ctx, w.HackathonID)
	if err != nil {
		return err
	}
	w.Registered = registered

	submission, err := w.api.SubmissionStatus(ctx, w.HackathonID)
	if err != nil {
		return err
	}
	w.Submission = submission
	return nil
}

// Status reports the lifecycle stage: not_submitted until a submission
// exists, then whatever the submission says.
func (w *Workflow) Status() models.SubmissionStatus {
	if w.Submission == nil {
		return models.StatusNotSubmitted
	}
	return w.Submission.Status
}

// Phase computes the hackathon's current phase; registration and countdowns
// key off it.
func (w *Workflow) Phase() phase.Info {
	if w.Hackathon == nil {
		return phase.Info{State: phase.Ended}
	}
	return phase.Compute(time.Now(), w.Hackathon.StartDate, w.Hackathon.EndDate)
}

// Register signs the participant up. Registration is refused once the
// hackathon has ended; a duplicate registration is folded into success.
func (w *Workflow) Register(ctx context.Context, id *identity.Identity) error {
	if id == nil || id.Role != identity.RoleParticipant {
		return ErrUnauthorized
	}
	if w.Registered {
		return nil
	}
	if w.Phase().State == phase.Ended {
		return ErrRegistrationClosed
	}

	err := w.api.Register(ctx, w.HackathonID)
	if err != nil && !errors.Is(err, apiclient.ErrConflict) {
		return err
	}
	w.Registered = true
	return nil
}

// Submit validates and uploads the payload, then advances the lifecycle to
// submitted. Only participants may submit, only once per hackathon, and only
// one attempt may be in flight at a time. When a submission already exists it
// is returned alongside ErrConflict so the caller can surface it read-only.
func (w *Workflow) Submit(ctx context.Context, id *identity.Identity, payload models.Payload) (*models.Submission, error) {
	if id == nil || id.Role != identity.RoleParticipant {
		return nil, ErrUnauthorized
	}
	if w.Hackathon == nil {
		return nil, fmt.Errorf("workflow not loaded")
	}
	if w.Submission != nil {
		return w.Submission, apiclient.ErrConflict
	}
	if err := Validate(w.Hackathon.Type, payload); err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	w.inFlight = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()

	resp, err := w.api.Submit(ctx, w.HackathonID, w.Hackathon.Type, payload)
	if err != nil {
		if errors.Is(err, apiclient.ErrConflict) {
			// The server knew about a submission we did not; adopt it.
			if existing, statusErr := w.api.SubmissionStatus(ctx, w.HackathonID); statusErr == nil && existing != nil {
				w.Submission = existing
			}
			return w.Submission, err
		}
		return nil, err
	}

	submission := &models.Submission{
		HackathonID: w.HackathonID,
		Participant: id.Subject,
		Type:        w.Hackathon.Type,
		Filename:    resp.Filename,
		GithubURL:   payload.GithubURL,
		SubmittedAt: time.Now(),
		Status:      models.StatusNotSubmitted,
	}
	if err := submission.Advance(models.StatusSubmitted); err != nil {
		return nil, err
	}

	// Prefer the server's record when it is already queryable.
	if recorded, statusErr := w.api.SubmissionStatus(ctx, w.HackathonID); statusErr == nil && recorded != nil {
		submission = recorded
	}
	w.Submission = submission
	zap.S().Infof("submitted to hackathon %s (%s)", w.HackathonID, w.Hackathon.Type)
	return submission, nil
}
