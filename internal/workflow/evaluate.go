package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/hacklens/hacklens-go/internal/apiclient"
	"github.com/hacklens/hacklens-go/internal/identity"
	"github.com/hacklens/hacklens-go/internal/models"
)

// Evaluate triggers evaluation of a submitted project and attaches the typed
// result. Judges only; the submission must currently be submitted. A result
// whose variant does not match the submission's type is rejected with
// ErrSchemaMismatch and the submission is left untouched rather than
// rendering mismatched fields.
func Evaluate(ctx context.Context, api *apiclient.Client, id *identity.Identity, sub *models.Submission) (*models.EvaluationResult, error) {
	if id == nil || id.Role != identity.RoleJudge {
		return nil, ErrUnauthorized
	}
	if sub.Status != models.StatusSubmitted {
		return nil, &models.TransitionError{From: sub.Status, To: models.StatusEvaluated}
	}

	envelope, err := api.Evaluate(ctx, sub.ID)
	if err != nil {
		return nil, err
	}

	result, err := models.DecodeResult(sub.Type, envelope.Type, envelope.Result)
	if err != nil {
		zap.S().Errorf("evaluation result for submission %s rejected: %v", sub.ID, err)
		return nil, err
	}
	if err := sub.AttachResult(result); err != nil {
		return nil, err
	}
	zap.S().Infof("submission %s evaluated (%s)", sub.ID, sub.Type)
	return result, nil
}
