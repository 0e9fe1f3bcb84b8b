package models

// Role is a named agent specialization. A role is assignable to exactly
// one team slot per session.
type Role string

const (
	// RoleUIDeveloper builds widgets, portal pages, and forms.
	RoleUIDeveloper Role = "ui-developer"
	// RoleProcessAutomationDeveloper builds workflows, approvals, and business rules.
	RoleProcessAutomationDeveloper Role = "process-automation-developer"
	// RoleIntegrationDeveloper builds REST/SOAP integrations and import sets.
	RoleIntegrationDeveloper Role = "integration-developer"
	// RoleAppArchitect designs and coordinates full-application builds.
	RoleAppArchitect Role = "app-architect"
	// RoleSecurityReviewer audits ACLs, scripts, and data access.
	RoleSecurityReviewer Role = "security-reviewer"
	// RolePerformanceAnalyst profiles and tunes slow artifacts.
	RolePerformanceAnalyst Role = "performance-analyst"
	// RoleTester verifies the delivered artifacts against the objective.
	RoleTester Role = "tester"
	// RoleDeveloper is the general-purpose implementation role.
	RoleDeveloper Role = "developer"
)

// Valid returns true if the role is a known value.
func (r Role) Valid() bool {
	switch r {
	case RoleUIDeveloper, RoleProcessAutomationDeveloper, RoleIntegrationDeveloper,
		RoleAppArchitect, RoleSecurityReviewer, RolePerformanceAnalyst,
		RoleTester, RoleDeveloper:
		return true
	default:
		return false
	}
}

// TeamPlan describes the agent team assembled for an objective.
type TeamPlan struct {
	// PrimaryRole leads the work and writes the foundational readiness flag.
	PrimaryRole Role `json:"primary_role" yaml:"primary_role"`
	// SupportingRoles activate in order after the primary. The order is the
	// intended activation sequence, not a priority weight. The primary role
	// never appears in this list.
	SupportingRoles []Role `json:"supporting_roles" yaml:"supporting_roles"`
	// EstimatedAgentCount is 1 + len(SupportingRoles).
	EstimatedAgentCount int `json:"estimated_agent_count" yaml:"estimated_agent_count"`
}

// Roles returns the full role list, primary first.
func (p TeamPlan) Roles() []Role {
	roles := make([]Role, 0, 1+len(p.SupportingRoles))
	roles = append(roles, p.PrimaryRole)
	roles = append(roles, p.SupportingRoles...)
	return roles
}
