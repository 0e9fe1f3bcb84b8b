package models

import "testing"

func TestTaskType_Valid(t *testing.T) {
	tests := []struct {
		name     string
		taskType TaskType
		want     bool
	}{
		{"ui-artifact-development is valid", TaskUIArtifact, true},
		{"process-automation-development is valid", TaskProcessAutomation, true},
		{"integration-development is valid", TaskIntegration, true},
		{"full-application-development is valid", TaskFullApplication, true},
		{"security-review is valid", TaskSecurityReview, true},
		{"performance-optimization is valid", TaskPerformanceOptimization, true},
		{"generic is valid", TaskGeneric, true},
		{"empty string is invalid", TaskType(""), false},
		{"unknown type is invalid", TaskType("data-science"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.taskType.Valid(); got != tt.want {
				t.Errorf("TaskType(%q).Valid() = %v, want %v", tt.taskType, got, tt.want)
			}
		})
	}
}

func TestComplexity_Rank(t *testing.T) {
	if ComplexityLow.Rank() >= ComplexityMedium.Rank() {
		t.Error("low should rank below medium")
	}
	if ComplexityMedium.Rank() >= ComplexityHigh.Rank() {
		t.Error("medium should rank below high")
	}
	if Complexity("unknown").Rank() != 0 {
		t.Errorf("unknown complexity ranks %d, want 0", Complexity("unknown").Rank())
	}
}

func TestComplexity_Valid(t *testing.T) {
	for _, c := range []Complexity{ComplexityLow, ComplexityMedium, ComplexityHigh} {
		if !c.Valid() {
			t.Errorf("Complexity(%q).Valid() = false, want true", c)
		}
	}
	if Complexity("extreme").Valid() {
		t.Error(`Complexity("extreme").Valid() = true, want false`)
	}
}
