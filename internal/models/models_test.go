package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseHackType(t *testing.T) {
	tests := []struct {
		in      string
		want    HackType
		wantErr bool
	}{
		{"ml_hackathon", TypeML, false},
		{"codeathon", TypeCode, false},
		{"hackathon", TypeOpen, false},
		{"docker_hackathon", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHackType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHackType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHackType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSubmissionStatusTransitions(t *testing.T) {
	tests := []struct {
		from SubmissionStatus
		to   SubmissionStatus
		ok   bool
	}{
		{StatusNotSubmitted, StatusSubmitted, true},
		{StatusSubmitted, StatusEvaluated, true},
		{StatusNotSubmitted, StatusEvaluated, false},
		{StatusSubmitted, StatusNotSubmitted, false},
		{StatusEvaluated, StatusSubmitted, false},
		{StatusEvaluated, StatusNotSubmitted, false},
		{StatusEvaluated, StatusEvaluated, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.ok {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.ok)
			}
			sub := &Submission{Status: tt.from}
			err := sub.Advance(tt.to)
			if tt.ok && err != nil {
				t.Errorf("Advance(%s) from %s: unexpected error %v", tt.to, tt.from, err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatalf("Advance(%s) from %s: expected error", tt.to, tt.from)
				}
				if sub.Status != tt.from {
					t.Errorf("Advance left status %s, want %s unchanged", sub.Status, tt.from)
				}
			}
		})
	}
}

func TestDecodeResult(t *testing.T) {
	codeRaw := []byte(`{"test_cases_passed": 8, "performance": "fast", "final_score": 87.5}`)
	mlRaw := []byte(`{"accuracy": 0.9, "precision": 0.8, "recall": 0.85, "f1_score": 0.82, "final_combined_score": 0.86}`)

	t.Run("codeathon with string performance", func(t *testing.T) {
		result, err := DecodeResult(TypeCode, "", codeRaw)
		if err != nil {
			t.Fatalf("DecodeResult: %v", err)
		}
		if result.Type != TypeCode || result.Code == nil {
			t.Fatalf("wrong variant: %+v", result)
		}
		if result.Code.TestCasesPassed != 8 || result.Code.Performance != "fast" || result.Code.FinalScore != 87.5 {
			t.Errorf("bad fields: %+v", result.Code)
		}
	})

	t.Run("codeathon with numeric performance", func(t *testing.T) {
		result, err := DecodeResult(TypeCode, "", []byte(`{"test_cases_passed": 6, "performance": 0.9, "final_score": 0.8}`))
		if err != nil {
			t.Fatalf("DecodeResult: %v", err)
		}
		if result.Code.Performance != "0.90" {
			t.Errorf("Performance = %q, want %q", result.Code.Performance, "0.90")
		}
	})

	t.Run("ml variant", func(t *testing.T) {
		result, err := DecodeResult(TypeML, TypeML, mlRaw)
		if err != nil {
			t.Fatalf("DecodeResult: %v", err)
		}
		if result.ML == nil || result.ML.FinalCombinedScore != 0.86 {
			t.Errorf("bad fields: %+v", result.ML)
		}
	})

	t.Run("tag mismatch", func(t *testing.T) {
		if _, err := DecodeResult(TypeCode, TypeML, mlRaw); !errors.Is(err, ErrSchemaMismatch) {
			t.Errorf("error = %v, want ErrSchemaMismatch", err)
		}
	})

	t.Run("fields from wrong variant", func(t *testing.T) {
		if _, err := DecodeResult(TypeCode, "", mlRaw); !errors.Is(err, ErrSchemaMismatch) {
			t.Errorf("error = %v, want ErrSchemaMismatch", err)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		raw := []byte(`{"docker_valid": true, "final_score": 0.7}`)
		if _, err := DecodeResult(TypeOpen, "", raw); !errors.Is(err, ErrSchemaMismatch) {
			t.Errorf("error = %v, want ErrSchemaMismatch", err)
		}
	})

	t.Run("unknown declared type", func(t *testing.T) {
		if _, err := DecodeResult("quizathon", "", codeRaw); !errors.Is(err, ErrUnknownHackType) {
			t.Errorf("error = %v, want ErrUnknownHackType", err)
		}
	})
}

func TestAttachResult(t *testing.T) {
	result := &EvaluationResult{Type: TypeCode, Code: &CodeResult{TestCasesPassed: 8, Performance: "fast", FinalScore: 87.5}}

	t.Run("attach to submitted", func(t *testing.T) {
		sub := &Submission{Type: TypeCode, Status: StatusSubmitted}
		if err := sub.AttachResult(result); err != nil {
			t.Fatalf("AttachResult: %v", err)
		}
		if sub.Status != StatusEvaluated || sub.Result != result {
			t.Errorf("got status %s, result %v", sub.Status, sub.Result)
		}
	})

	t.Run("variant mismatch leaves submission untouched", func(t *testing.T) {
		sub := &Submission{Type: TypeML, Status: StatusSubmitted}
		if err := sub.AttachResult(result); !errors.Is(err, ErrSchemaMismatch) {
			t.Fatalf("error = %v, want ErrSchemaMismatch", err)
		}
		if sub.Status != StatusSubmitted || sub.Result != nil {
			t.Errorf("submission mutated: status %s, result %v", sub.Status, sub.Result)
		}
	})

	t.Run("cannot attach twice", func(t *testing.T) {
		sub := &Submission{Type: TypeCode, Status: StatusSubmitted}
		if err := sub.AttachResult(result); err != nil {
			t.Fatalf("first AttachResult: %v", err)
		}
		var transitionErr *TransitionError
		if err := sub.AttachResult(result); !errors.As(err, &transitionErr) {
			t.Errorf("second AttachResult error = %v, want TransitionError", err)
		}
	})
}

func TestSubmissionUnmarshal(t *testing.T) {
	t.Run("evaluated with matching result", func(t *testing.T) {
		raw := []byte(`{
			"_id": "sub-1",
			"hackathon_id": "hack-1",
			"participant": "alice",
			"hackathon_type": "codeathon",
			"status": "evaluated",
			"evaluation_result": {"test_cases_passed": 8, "performance": "fast", "final_score": 87.5}
		}`)
		var sub Submission
		if err := json.Unmarshal(raw, &sub); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if sub.Result == nil || sub.Result.Type != TypeCode {
			t.Fatalf("result not decoded: %+v", sub.Result)
		}
	})

	t.Run("submitted without result", func(t *testing.T) {
		raw := []byte(`{"_id": "sub-2", "hackathon_type": "hackathon", "status": "submitted", "evaluation_result": null}`)
		var sub Submission
		if err := json.Unmarshal(raw, &sub); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if sub.Result != nil || sub.Status != StatusSubmitted {
			t.Errorf("got status %s, result %v", sub.Status, sub.Result)
		}
	})

	t.Run("result present but not evaluated", func(t *testing.T) {
		raw := []byte(`{"_id": "sub-3", "hackathon_type": "codeathon", "status": "submitted", "evaluation_result": {"test_cases_passed": 1, "performance": "slow", "final_score": 10}}`)
		var sub Submission
		if err := json.Unmarshal(raw, &sub); err == nil {
			t.Error("expected error for result on non-evaluated submission")
		}
	})

	t.Run("evaluated without result", func(t *testing.T) {
		raw := []byte(`{"_id": "sub-4", "hackathon_type": "codeathon", "status": "evaluated"}`)
		var sub Submission
		if err := json.Unmarshal(raw, &sub); err == nil {
			t.Error("expected error for evaluated submission without result")
		}
	})

	t.Run("result variant mismatch", func(t *testing.T) {
		raw := []byte(`{"_id": "sub-5", "hackathon_type": "codeathon", "status": "evaluated", "evaluation_result": {"accuracy": 0.9, "precision": 0.8, "recall": 0.85, "f1_score": 0.82, "final_combined_score": 0.86}}`)
		var sub Submission
		err := json.Unmarshal(raw, &sub)
		if !errors.Is(err, ErrSchemaMismatch) {
			t.Errorf("error = %v, want ErrSchemaMismatch", err)
		}
	})
}
