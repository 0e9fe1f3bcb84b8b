package models

// TaskType categorizes an objective into one of the supported development
// task categories. The set is closed: the classifier always returns one of
// these values, falling back to TaskGeneric.
type TaskType string

const (
	// TaskUIArtifact covers portal widgets, dashboards, forms, and other UI work.
	TaskUIArtifact TaskType = "ui-artifact-development"
	// TaskProcessAutomation covers workflows, approvals, and business rules.
	TaskProcessAutomation TaskType = "process-automation-development"
	// TaskIntegration covers REST/SOAP integrations, webhooks, and import sets.
	TaskIntegration TaskType = "integration-development"
	// TaskFullApplication covers building a complete scoped application.
	TaskFullApplication TaskType = "full-application-development"
	// TaskSecurityReview covers ACL audits, vulnerability reviews, and hardening.
	TaskSecurityReview TaskType = "security-review"
	// TaskPerformanceOptimization covers tuning slow queries, jobs, and pages.
	TaskPerformanceOptimization TaskType = "performance-optimization"
	// TaskGeneric is the fallback when no category matcher fires.
	TaskGeneric TaskType = "generic"
)

// Valid returns true if the task type is a known value.
func (t TaskType) Valid() bool {
	switch t {
	case TaskUIArtifact, TaskProcessAutomation, TaskIntegration,
		TaskFullApplication, TaskSecurityReview, TaskPerformanceOptimization,
		TaskGeneric:
		return true
	default:
		return false
	}
}

// Complexity is an ordinal estimate of how involved an objective is.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Valid returns true if the complexity is a known value.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexityLow, ComplexityMedium, ComplexityHigh:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal position of the complexity tier, with low as 0.
// Unknown values rank as low.
func (c Complexity) Rank() int {
	switch c {
	case ComplexityMedium:
		return 1
	case ComplexityHigh:
		return 2
	default:
		return 0
	}
}

// Classification is the result of analyzing a free-text objective.
// It is derived data: recomputing it from the same objective always
// yields the same result.
type Classification struct {
	// TaskType is the detected task category.
	TaskType TaskType `json:"task_type" yaml:"task_type"`
	// Complexity is the estimated complexity tier.
	Complexity Complexity `json:"complexity" yaml:"complexity"`
	// Entities is the deduplicated, sorted set of platform-domain nouns
	// detected in the objective, plus the fixed seed set.
	Entities []string `json:"entities" yaml:"entities"`
}
