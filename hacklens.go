// Package hacklens is a Go client for the HackLens hackathon-judging
// platform. It resolves a trusted identity from the persisted bearer token,
// gates navigation by role, tracks hackathon phase, and drives the
// submission/evaluation lifecycle against the platform API. Embedding
// applications construct an SDK and hand its pieces to their views.
package hacklens

import (
	"context"

	"github.com/hacklens/hacklens-go/internal/apiclient"
	"github.com/hacklens/hacklens-go/internal/config"
	"github.com/hacklens/hacklens-go/internal/guard"
	"github.com/hacklens/hacklens-go/internal/identity"
	"github.com/hacklens/hacklens-go/internal/models"
	"github.com/hacklens/hacklens-go/internal/phase"
	"github.com/hacklens/hacklens-go/internal/scorecard"
	"github.com/hacklens/hacklens-go/internal/session"
	"github.com/hacklens/hacklens-go/internal/workflow"
)

// Re-exported types, so consumers can name everything the SDK hands out.
type (
	Config   = config.Config
	Identity = identity.Identity
	Role     = identity.Role
	Decision = guard.Decision

	HackType         = models.HackType
	Hackathon        = models.Hackathon
	Submission       = models.Submission
	SubmissionStatus = models.SubmissionStatus
	Payload          = models.Payload
	FilePart         = models.FilePart
	EvaluationResult = models.EvaluationResult

	PhaseInfo  = phase.Info
	PhaseState = phase.State
	PhaseClock = phase.Clock

	Client         = apiclient.Client
	Workflow       = workflow.Workflow
	PayloadSchema  = workflow.Schema
	ScorecardField = scorecard.Field

	SessionStore = session.Store
)

const (
	RoleParticipant = identity.RoleParticipant
	RoleJudge       = identity.RoleJudge
	RoleAdmin       = identity.RoleAdmin

	TypeML   = models.TypeML
	TypeCode = models.TypeCode
	TypeOpen = models.TypeOpen

	StatusNotSubmitted = models.StatusNotSubmitted
	StatusSubmitted    = models.StatusSubmitted
	StatusEvaluated    = models.StatusEvaluated

	PhasePending = phase.Pending
	PhaseLive    = phase.Live
	PhaseEnded   = phase.Ended
)

var (
	LoadConfig    = config.Load
	ConfigFromEnv = config.FromEnv
	InitLogger    = config.InitLogger

	ComputePhase = phase.Compute

	Authorize    = guard.Authorize
	AuthorizeAny = guard.AuthorizeAny
	LandingRoute = guard.LandingRoute

	RequiredPayloadShape = workflow.RequiredPayloadShape
	ValidatePayload      = workflow.Validate

	FormatResult = scorecard.Format
)

// SDK wires the session store and API client together for one configured
// platform.
type SDK struct {
	Config *Config
	Store  SessionStore
	API    *Client
}

// New builds an SDK with the token persisted at the configured file path.
func New(cfg *Config) *SDK {
	return NewWithStore(cfg, session.NewFileStore(cfg.Session.TokenFile))
}

// NewWithStore builds an SDK on a caller-supplied session store, which is how
// tests inject fixtures.
func NewWithStore(cfg *Config, store SessionStore) *SDK {
	return &SDK{Config: cfg, Store: store, API: apiclient.New(cfg, store)}
}

// NewMemStore returns an in-memory session store for NewWithStore.
func NewMemStore() SessionStore {
	return session.NewMemStore()
}

// Identity resolves the current identity from the session store. Anonymous is
// (nil, nil); a stale token is cleared and reported.
func (s *SDK) Identity() (*Identity, error) {
	return identity.Resolve(s.Store)
}

// Guard evaluates a protected navigation target for the current identity.
func (s *SDK) Guard(required Role) Decision {
	id, _ := s.Identity()
	return guard.Authorize(id, required)
}

// Workflow starts tracking one hackathon's submission lifecycle.
func (s *SDK) Workflow(hackathonID string) *Workflow {
	return workflow.New(s.API, hackathonID)
}

// Evaluate runs a judge's evaluation of a submission and attaches the typed
// result.
func (s *SDK) Evaluate(ctx context.Context, id *Identity, sub *Submission) (*EvaluationResult, error) {
	return workflow.Evaluate(ctx, s.API, id, sub)
}
