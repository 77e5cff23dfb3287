package domain

import (
	"testing"

	"github.com/google/uuid"
)

func newTestRisk(t *testing.T, prob RiskProbability, impact RiskImpact) *Risk {
	t.Helper()

	risk, err := NewRisk(uuid.New(), "Key vendor dependency", "supply", prob, impact)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return risk
}

func TestNewRisk(t *testing.T) {
	t.Parallel()

	risk := newTestRisk(t, RiskProbabilityMedium, RiskImpactHigh)
	if risk.Status != RiskStatusIdentified {
		t.Errorf("Expected identified status, got %s", risk.Status)
	}
}

func TestRiskSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prob     RiskProbability
		impact   RiskImpact
		expected int
	}{
		{RiskProbabilityLow, RiskImpactLow, 1},
		{RiskProbabilityMedium, RiskImpactMedium, 4},
		{RiskProbabilityHigh, RiskImpactHigh, 9},
		{RiskProbabilityLow, RiskImpactHigh, 3},
		{RiskProbabilityHigh, RiskImpactMedium, 6},
	}

	for _, tc := range tests {
		risk := newTestRisk(t, tc.prob, tc.impact)
		if got := risk.Severity(); got != tc.expected {
			t.Errorf("Severity(%s, %s): expected %d, got %d", tc.prob, tc.impact, tc.expected, got)
		}
	}
}

func TestRiskReassess(t *testing.T) {
	t.Parallel()

	risk := newTestRisk(t, RiskProbabilityLow, RiskImpactLow)

	if err := risk.Reassess(RiskProbabilityHigh, RiskImpactHigh); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if risk.Severity() != 9 {
		t.Errorf("Expected severity 9 after reassessment, got %d", risk.Severity())
	}

	if err := risk.Reassess(RiskProbability("certain"), RiskImpactLow); err != ErrRiskProbabilityInvalid {
		t.Errorf("Expected ErrRiskProbabilityInvalid, got %v", err)
	}
}

func TestRiskAddComment(t *testing.T) {
	t.Parallel()

	risk := newTestRisk(t, RiskProbabilityMedium, RiskImpactLow)
	author := uuid.New()

	if err := risk.AddComment(author, "Mitigation plan drafted"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(risk.Comments) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(risk.Comments))
	}
	if risk.Comments[0].AuthorID != author {
		t.Error("Expected author to be recorded")
	}

	if err := risk.AddComment(author, ""); err != ErrRiskCommentEmpty {
		t.Errorf("Expected ErrRiskCommentEmpty, got %v", err)
	}
}

func TestRiskSetStatus(t *testing.T) {
	t.Parallel()

	risk := newTestRisk(t, RiskProbabilityMedium, RiskImpactMedium)

	if err := risk.SetStatus(RiskStatusMitigating); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := risk.SetStatus(RiskStatus("ignored")); err != ErrRiskStatusInvalid {
		t.Errorf("Expected ErrRiskStatusInvalid, got %v", err)
	}
}
