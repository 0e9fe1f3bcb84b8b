package coordinator

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/snowswarm/snowswarm/pkg/models"
)

// roleDuties gives each role a one-line charter included in the payload so
// the executing agent can brief its team members.
var roleDuties = map[models.Role]string{
	models.RoleUIDeveloper:                "Build the widgets, portal pages, and forms the objective calls for.",
	models.RoleProcessAutomationDeveloper: "Build the workflows, approvals, and business rules the objective calls for.",
	models.RoleIntegrationDeveloper:       "Build the REST/SOAP integrations, webhooks, and import sets the objective calls for.",
	models.RoleAppArchitect:               "Design the application structure, create the scoped app, and coordinate the other roles.",
	models.RoleSecurityReviewer:           "Audit ACLs, script permissions, and data access on everything the team produces.",
	models.RolePerformanceAnalyst:         "Profile the affected artifacts and tune the slow paths.",
	models.RoleTester:                     "Verify every delivered artifact against the objective and record the results.",
	models.RoleDeveloper:                  "Implement the objective end to end.",
}

// payloadManifest is the machine-readable block embedded in the payload.
type payloadManifest struct {
	Session  models.Session              `yaml:"session"`
	Contract models.CoordinationContract `yaml:"contract"`
}

// RenderPayload serializes a session, its team plan, and its coordination
// contract into the single instruction document handed to the execution
// layer. The document is deliberately plain text: the consumer is a
// free-text-driven agent, not a typed RPC client, and this string is the
// sole planner-to-execution channel.
func RenderPayload(session models.Session, contract models.CoordinationContract) (string, error) {
	manifest, err := yaml.Marshal(payloadManifest{Session: session, Contract: contract})
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# Swarm session %s\n\n", session.ID)
	fmt.Fprintf(&b, "## Objective\n\n%s\n\n", strings.TrimSpace(session.Objective))

	fmt.Fprintf(&b, "## Classification\n\n")
	fmt.Fprintf(&b, "- Task type: %s\n", session.Classification.TaskType)
	fmt.Fprintf(&b, "- Complexity: %s\n", session.Classification.Complexity)
	fmt.Fprintf(&b, "- Relevant entities: %s\n\n", strings.Join(session.Classification.Entities, ", "))

	fmt.Fprintf(&b, "## Team\n\n")
	fmt.Fprintf(&b, "Spawn %d agents. Activation order below; each agent works its role only.\n\n",
		session.TeamPlan.EstimatedAgentCount)
	for i, role := range session.TeamPlan.Roles() {
		marker := "supporting"
		if i == 0 {
			marker = "primary"
		}
		fmt.Fprintf(&b, "%d. %s (%s): %s\n", i+1, role, marker, roleDuties[role])
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Coordination protocol\n\n")
	fmt.Fprintf(&b, "All shared-memory keys follow the template %s, scoped to this session.\n", contract.KeyTemplate)
	fmt.Fprintf(&b, "Handoff is flag-based: each role writes its readiness flag when its foundational\n")
	fmt.Fprintf(&b, "work is done, and reads the flag it waits on before starting. Do not begin a\n")
	fmt.Fprintf(&b, "role's work while its waits-on flag is unset.\n\n")
	for _, flag := range contract.ReadinessFlags {
		if flag.WaitsOn == "" {
			fmt.Fprintf(&b, "- %s: starts immediately, writes %s when done\n", flag.Role, flag.Key)
		} else {
			fmt.Fprintf(&b, "- %s: waits on %s, writes %s when done\n", flag.Role, flag.WaitsOn, flag.Key)
		}
	}
	fmt.Fprintf(&b, "\nRewrite an aggregate progress summary to %s every %s.\n",
		contract.HeartbeatKey, contract.HeartbeatInterval)
	fmt.Fprintf(&b, "The heartbeat is for outside observation only; never gate work on it.\n\n")

	fmt.Fprintf(&b, "## Manifest\n\n```yaml\n%s```\n", manifest)

	return b.String(), nil
}
