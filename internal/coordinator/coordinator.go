package coordinator

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/snowswarm/snowswarm/internal/state"
	"github.com/snowswarm/snowswarm/pkg/models"
)

// Coordinator turns a classified objective and team plan into a persisted
// session, its coordination contract, and the instruction payload handed
// to the execution layer.
type Coordinator struct {
	store     *state.DB
	heartbeat time.Duration
	logger    *DebugLogger

	// Overridable for deterministic tests.
	now       func() time.Time
	newSuffix func() string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithHeartbeatInterval overrides the default heartbeat cadence.
func WithHeartbeatInterval(d time.Duration) Option {
	return func(c *Coordinator) { c.heartbeat = d }
}

// WithLogger attaches a debug logger.
func WithLogger(l *DebugLogger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithClock overrides the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithSuffixSource overrides the random-suffix source (for testing).
func WithSuffixSource(fn func() string) Option {
	return func(c *Coordinator) { c.newSuffix = fn }
}

// New creates a Coordinator backed by the given session store.
func New(store *state.DB, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:     store,
		heartbeat: DefaultHeartbeatInterval,
		now:       time.Now,
		newSuffix: randomSuffix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// randomSuffix returns the 8-character random portion of a session ID.
func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// newSessionID builds a time-ordered, best-effort-unique session token:
// swarm_{unix-millis}_{random suffix}. Uniqueness is advisory; two
// processes colliding on both millisecond and suffix is an accepted
// negligible risk, not something a central allocator prevents.
func (c *Coordinator) newSessionID() string {
	return fmt.Sprintf("swarm_%d_%s", c.now().UnixMilli(), c.newSuffix())
}

// CreateSession creates a new session for the objective, derives its
// coordination contract, and renders the instruction payload.
//
// The session snapshot is persisted before this function returns. If the
// write fails the whole call fails and nothing may be handed to execution:
// the store is the only way to later inspect or recover session state.
func (c *Coordinator) CreateSession(objective string, cls models.Classification, plan models.TeamPlan) (models.Session, models.CoordinationContract, string, error) {
	now := c.now()
	session := models.Session{
		ID:             c.newSessionID(),
		Objective:      objective,
		Classification: cls,
		TeamPlan:       plan,
		Status:         models.SessionInitializing,
		StartedAt:      now,
		UpdatedAt:      now,
	}

	contract := BuildContract(session.ID, plan, c.heartbeat)

	payload, err := RenderPayload(session, contract)
	if err != nil {
		return models.Session{}, models.CoordinationContract{}, "", fmt.Errorf("render payload: %w", err)
	}

	if err := c.store.CreateSession(&session); err != nil {
		return models.Session{}, models.CoordinationContract{}, "", fmt.Errorf("session could not be recorded, no plan executed: %w", err)
	}

	c.logger.Log("session %s created: type=%s complexity=%s agents=%d",
		session.ID, cls.TaskType, cls.Complexity, plan.EstimatedAgentCount)

	return session, contract, payload, nil
}

// MarkActive transitions a session to active once the plan has been handed
// to the execution layer.
func (c *Coordinator) MarkActive(sessionID string) error {
	return c.store.UpdateStatus(sessionID, models.SessionActive)
}

// RecordOutcome transitions a session to completed or failed based on the
// downstream result. Execution failure is recorded, never re-raised as a
// planning error.
func (c *Coordinator) RecordOutcome(sessionID string, succeeded bool) error {
	status := models.SessionCompleted
	if !succeeded {
		status = models.SessionFailed
	}
	c.logger.Log("session %s finished: %s", sessionID, status)
	return c.store.UpdateStatus(sessionID, status)
}
