package planner

import (
	"fmt"

	"github.com/snowswarm/snowswarm/pkg/models"
)

// lowComplexitySupportCap limits supporting roles for low-complexity
// objectives regardless of the caller's maxAgents. Trivial tasks should not
// be over-provisioned; this is a policy choice, not a derived value.
const lowComplexitySupportCap = 2

// primaryRoles maps each task type to the role that leads the team.
// The mapping is closed: every task type the classifier can return has
// an entry.
var primaryRoles = map[models.TaskType]models.Role{
	models.TaskUIArtifact:              models.RoleUIDeveloper,
	models.TaskProcessAutomation:       models.RoleProcessAutomationDeveloper,
	models.TaskIntegration:             models.RoleIntegrationDeveloper,
	models.TaskFullApplication:         models.RoleAppArchitect,
	models.TaskSecurityReview:          models.RoleSecurityReviewer,
	models.TaskPerformanceOptimization: models.RolePerformanceAnalyst,
	models.TaskGeneric:                 models.RoleDeveloper,
}

// supportingRoles maps each task type to its ordered supporting-role
// candidates. Order is the activation sequence; later-listed roles are the
// more optional ones and are dropped first when the team-size cap bites.
var supportingRoles = map[models.TaskType][]models.Role{
	models.TaskUIArtifact:              {models.RoleSecurityReviewer, models.RoleTester},
	models.TaskProcessAutomation:       {models.RoleSecurityReviewer, models.RoleTester},
	models.TaskIntegration:             {models.RoleSecurityReviewer, models.RoleTester},
	models.TaskFullApplication:         {models.RoleProcessAutomationDeveloper, models.RoleUIDeveloper, models.RoleSecurityReviewer, models.RoleTester},
	models.TaskSecurityReview:          {models.RoleTester},
	models.TaskPerformanceOptimization: {models.RoleTester},
	// Generic objectives get a solo developer; there is no signal to justify
	// provisioning extra roles.
	models.TaskGeneric: {},
}

// RoleTable holds the taskType-to-role policy used to assemble teams.
// The default table is fixed; a project config may override individual
// entries (see LoadRoleTable).
type RoleTable struct {
	primary map[models.TaskType]models.Role
	support map[models.TaskType][]models.Role
}

// NewRoleTable returns a RoleTable with the default policy.
func NewRoleTable() *RoleTable {
	t := &RoleTable{
		primary: make(map[models.TaskType]models.Role, len(primaryRoles)),
		support: make(map[models.TaskType][]models.Role, len(supportingRoles)),
	}
	for tt, r := range primaryRoles {
		t.primary[tt] = r
	}
	for tt, rs := range supportingRoles {
		t.support[tt] = append([]models.Role{}, rs...)
	}
	return t
}

// PlanTeam assembles a team using the default role table.
func PlanTeam(c models.Classification, maxAgents int) (models.TeamPlan, error) {
	return NewRoleTable().Plan(c, maxAgents)
}

// Plan assembles the agent team for a classification.
//
// The primary role comes from a fixed per-task-type lookup and the
// supporting roles from an ordered candidate list, truncated from the end
// so the total team size never exceeds maxAgents. Low-complexity
// objectives are further capped at two supporting roles. maxAgents below 1
// is clamped to 1, yielding a team of just the primary role.
//
// A duplicate role between primary and supporting would let the same
// capability be spawned twice, so it is checked here and reported as an
// error rather than silently producing an unsafe plan. With the fixed
// tables it cannot occur; the check guards table edits and config
// overrides.
func (t *RoleTable) Plan(c models.Classification, maxAgents int) (models.TeamPlan, error) {
	if maxAgents < 1 {
		maxAgents = 1
	}

	primary, ok := t.primary[c.TaskType]
	if !ok {
		// The classifier only returns known task types; treat anything else
		// as generic rather than failing the plan.
		primary = models.RoleDeveloper
	}

	candidates := t.support[c.TaskType]

	supportCap := maxAgents - 1
	if c.Complexity == models.ComplexityLow && supportCap > lowComplexitySupportCap {
		supportCap = lowComplexitySupportCap
	}
	if supportCap > len(candidates) {
		supportCap = len(candidates)
	}

	support := make([]models.Role, supportCap)
	copy(support, candidates[:supportCap])

	plan := models.TeamPlan{
		PrimaryRole:         primary,
		SupportingRoles:     support,
		EstimatedAgentCount: 1 + len(support),
	}

	if err := validatePlan(plan); err != nil {
		return models.TeamPlan{}, err
	}
	return plan, nil
}

// validatePlan enforces the no-duplicate-role invariant: the primary role
// must not appear among the supporting roles, and no supporting role may
// repeat.
func validatePlan(p models.TeamPlan) error {
	seen := map[models.Role]bool{p.PrimaryRole: true}
	for _, r := range p.SupportingRoles {
		if seen[r] {
			return fmt.Errorf("duplicate role %q in team plan for primary %q", r, p.PrimaryRole)
		}
		seen[r] = true
	}
	return nil
}
