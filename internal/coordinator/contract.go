// Package coordinator creates swarm sessions and the coordination contract
// the agent team follows.
package coordinator

import (
	"fmt"
	"time"

	"github.com/snowswarm/snowswarm/pkg/models"
)

// KeyTemplate is the shared-memory namespace format. Every key an agent
// writes is scoped by its role and the session, so concurrent sessions and
// roles within a session can never collide.
const KeyTemplate = "{entityType}_{role}_{sessionID}"

// DefaultHeartbeatInterval is how often the team rewrites its aggregate
// progress summary. Heartbeats are observability only; nothing reads them
// for correctness.
const DefaultHeartbeatInterval = 10 * time.Second

// ContractKey expands the namespace template for a concrete entity type,
// role, and session.
func ContractKey(entityType string, role models.Role, sessionID string) string {
	return fmt.Sprintf("%s_%s_%s", entityType, role, sessionID)
}

// readinessKey is the boolean flag a role writes when its foundational
// work is done.
func readinessKey(role models.Role, sessionID string) string {
	return ContractKey("ready", role, sessionID)
}

// BuildContract derives the coordination contract for a team plan.
//
// Readiness flags follow the activation order: the primary role starts
// immediately and each supporting role waits on the flag of the role
// activated before it. The ordering is advisory; each agent enforces it
// only by reading its predecessor's flag before acting.
func BuildContract(sessionID string, plan models.TeamPlan, heartbeat time.Duration) models.CoordinationContract {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeatInterval
	}

	roles := plan.Roles()
	flags := make([]models.ReadinessFlag, 0, len(roles))
	prev := ""
	for _, role := range roles {
		key := readinessKey(role, sessionID)
		flags = append(flags, models.ReadinessFlag{
			Role:    role,
			Key:     key,
			WaitsOn: prev,
		})
		prev = key
	}

	return models.CoordinationContract{
		SessionID:         sessionID,
		KeyTemplate:       KeyTemplate,
		ReadinessFlags:    flags,
		HeartbeatKey:      fmt.Sprintf("heartbeat_swarm_%s", sessionID),
		HeartbeatInterval: heartbeat,
	}
}
