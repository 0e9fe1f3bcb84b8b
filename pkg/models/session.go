package models

import "time"

// SessionStatus represents the lifecycle state of a swarm session.
// Transitions move forward only: initializing -> active -> completed/failed.
type SessionStatus string

const (
	// SessionInitializing means the session record exists but execution has
	// not been handed off yet.
	SessionInitializing SessionStatus = "initializing"
	// SessionActive means the plan has been handed to the execution layer.
	SessionActive SessionStatus = "active"
	// SessionCompleted means the downstream agent process finished cleanly.
	SessionCompleted SessionStatus = "completed"
	// SessionFailed means the downstream agent process errored or exited non-zero.
	SessionFailed SessionStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionInitializing, SessionActive, SessionCompleted, SessionFailed:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal position of the status in the forward-only
// lifecycle. Completed and failed are both terminal and share a rank.
func (s SessionStatus) Rank() int {
	switch s {
	case SessionActive:
		return 1
	case SessionCompleted, SessionFailed:
		return 2
	default:
		return 0
	}
}

// Terminal returns true if the status is a final state.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionFailed
}

// Session is one planning-and-execution unit. The objective,
// classification, and team plan are an immutable snapshot taken at
// creation time; a re-run gets a new session.
type Session struct {
	// ID is the globally unique, time-ordered session token.
	ID string `json:"id" yaml:"id"`
	// Objective is the original free-text objective, verbatim.
	Objective string `json:"objective" yaml:"objective"`
	// Classification is the classifier's result for the objective.
	Classification Classification `json:"classification" yaml:"classification"`
	// TeamPlan is the assembled agent team.
	TeamPlan TeamPlan `json:"team_plan" yaml:"team_plan"`
	// Status is the current lifecycle state.
	Status SessionStatus `json:"status" yaml:"status"`
	// StartedAt is when the session was created.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	// UpdatedAt is when the session record last changed.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// ReadinessFlag is the shared-memory key one role writes when its
// foundational work is complete, together with the key the role must
// poll before starting its own work.
type ReadinessFlag struct {
	// Role is the role that writes this flag.
	Role Role `json:"role" yaml:"role"`
	// Key is the boolean-valued shared-memory key the role writes.
	Key string `json:"key" yaml:"key"`
	// WaitsOn is the flag key the role must observe before proceeding.
	// Empty for the primary role, which starts immediately.
	WaitsOn string `json:"waits_on,omitempty" yaml:"waits_on,omitempty"`
}

// CoordinationContract is the shared-memory naming and handoff convention
// the agent team follows. It is passive data, not runtime state: the
// planner defines it once and never enforces it.
type CoordinationContract struct {
	// SessionID scopes every key in the contract.
	SessionID string `json:"session_id" yaml:"session_id"`
	// KeyTemplate is the namespace format for all shared-memory keys:
	// {entityType}_{role}_{sessionID}. It guarantees no collision across
	// concurrent sessions or across roles within one session.
	KeyTemplate string `json:"key_template" yaml:"key_template"`
	// ReadinessFlags lists, in activation order, the flag each role writes
	// and the flag it waits on.
	ReadinessFlags []ReadinessFlag `json:"readiness_flags" yaml:"readiness_flags"`
	// HeartbeatKey is the shared-memory key for the periodic progress
	// summary. Observability only, never used for correctness.
	HeartbeatKey string `json:"heartbeat_key" yaml:"heartbeat_key"`
	// HeartbeatInterval is how often the heartbeat record is rewritten.
	HeartbeatInterval time.Duration `json:"heartbeat_interval" yaml:"heartbeat_interval"`
}
