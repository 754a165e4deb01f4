package scorecard

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hacklens/hacklens-go/internal/models"
)

// Field is one labeled line of a rendered scorecard.
type Field struct {
	Label string
	Value string
}

var ErrUnknownType = errors.New("no scorecard defined for hackathon type")

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// Format maps a typed evaluation result to display-ready fields. There is no
// generic fallback scorecard: an unknown type or a result tagged with a
// different type renders nothing.
func Format(hackType models.HackType, result *models.EvaluationResult) ([]Field, error) {
	if result == nil || result.Type != hackType {
		return nil, models.ErrSchemaMismatch
	}

	switch hackType {
	case models.TypeML:
		r := result.ML
		return []Field{
			{Label: "Accuracy", Value: score(r.Accuracy)},
			{Label: "Precision", Value: score(r.Precision)},
			{Label: "Recall", Value: score(r.Recall)},
			{Label: "F1 Score", Value: score(r.F1Score)},
			{Label: "Final Combined Score", Value: score(r.FinalCombinedScore)},
		}, nil
	case models.TypeCode:
		r := result.Code
		return []Field{
			{Label: "Test Cases Passed", Value: strconv.Itoa(r.TestCasesPassed)},
			{Label: "Performance", Value: string(r.Performance)},
			{Label: "Final Score", Value: score(r.FinalScore)},
		}, nil
	case models.TypeOpen:
		r := result.Open
		return []Field{
			{Label: "Docker Valid", Value: yesNo(r.DockerValid)},
			{Label: "Deployment Ready", Value: yesNo(r.DeploymentReady)},
			{Label: "Final Score", Value: score(r.FinalScore)},
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, hackType)
}
