// Package planner classifies free-text objectives and assembles agent teams.
package planner

import "github.com/snowswarm/snowswarm/pkg/models"

// CategoryMatcher associates a task type with the keywords that select it.
type CategoryMatcher struct {
	// TaskType is the category this matcher selects.
	TaskType models.TaskType
	// Keywords are matched as lowercase substrings of the objective.
	Keywords []string
}

// categoryMatchers is the single source of truth for objective
// classification. Matchers are evaluated in order and the first match wins;
// ambiguous objectives resolve to the earlier-listed, more common category.
// The order is part of the classifier's contract and must not be reshuffled.
var categoryMatchers = []CategoryMatcher{
	{
		TaskType: models.TaskProcessAutomation,
		Keywords: []string{
			"approval",
			"workflow",
			"business rule",
			"automate",
			"automation",
			"scheduled job",
			"notification",
		},
	},
	{
		TaskType: models.TaskUIArtifact,
		Keywords: []string{
			"widget",
			"dashboard",
			"portal",
			"ui page",
			"form",
			"catalog item",
			"theme",
		},
	},
	{
		TaskType: models.TaskIntegration,
		Keywords: []string{
			"integration",
			"integrate",
			"rest api",
			"web service",
			"soap",
			"webhook",
			"import set",
			"mid server",
		},
	},
	{
		TaskType: models.TaskFullApplication,
		Keywords: []string{
			"full application",
			"complete application",
			"scoped app",
			"entire application",
			"end-to-end",
			"from scratch",
			"application",
		},
	},
	{
		TaskType: models.TaskSecurityReview,
		Keywords: []string{
			"security review",
			"security audit",
			"vulnerability",
			"acl",
			"access control",
			"harden",
			"compliance",
		},
	},
	{
		TaskType: models.TaskPerformanceOptimization,
		Keywords: []string{
			"performance",
			"optimize",
			"optimization",
			"slow",
			"latency",
			"tune",
			"speed up",
		},
	},
}

// multiStepConnectives indicate an objective describing a sequence of
// dependent steps. Each distinct connective found counts toward the
// complexity score.
var multiStepConnectives = []string{
	"and then",
	"after approval",
	"after that",
	"followed by",
	"once complete",
	"once approved",
	"finally",
	"step ",
}

// entityKeywords are platform-domain nouns counted for complexity scoring
// and reported in the detected-entity set. Keys are the search substring,
// values the canonical entity name that is reported.
var entityKeywords = map[string]string{
	"incident":       "incident",
	"problem":        "problem",
	"change request": "change_request",
	"service catalog": "sc_catalog",
	"catalog item":   "sc_cat_item",
	"request item":   "sc_req_item",
	"request":        "sc_request",
	"knowledge":      "kb_knowledge",
	"cmdb":           "cmdb_ci",
	"configuration item": "cmdb_ci",
	"asset":          "alm_asset",
	"equipment":      "alm_hardware",
	"user group":     "sys_user_group",
	"group":          "sys_user_group",
	"user":           "sys_user",
	"sla":            "contract_sla",
	"email":          "sys_email",
	"attachment":     "sys_attachment",
	"schedule":       "cmn_schedule",
	"survey":         "asmt_metric_type",
}

// seedEntities are always included in the detected-entity set so the
// downstream agents have the core tables for user and assignment context
// even when the objective names none.
var seedEntities = []string{
	"incident",
	"sys_user",
	"sys_user_group",
}
