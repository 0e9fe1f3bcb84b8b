package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/snowswarm/snowswarm/internal/config"
	"github.com/snowswarm/snowswarm/internal/coordinator"
	"github.com/snowswarm/snowswarm/internal/launcher"
	"github.com/snowswarm/snowswarm/internal/planner"
	"github.com/snowswarm/snowswarm/internal/state"
	"github.com/snowswarm/snowswarm/pkg/models"
)

var (
	swarmMaxAgents int
	swarmTypeHint  string
	swarmMode      string
	swarmDryRun    bool
)

var swarmCmd = &cobra.Command{
	Use:   "swarm <objective>",
	Short: "Plan and launch a multi-agent swarm for an objective",
	Long: `Analyze a free-text objective, assemble an agent team, and hand the
plan to the executing agent.

The objective is classified into a task category and complexity tier,
a team of specialized roles is assembled within the --max-agents cap,
and a session-scoped coordination contract is derived. The session is
recorded before anything launches, so 'snowswarm status <session-id>'
works immediately.

The --type flag is advisory only: it is compared against the
classifier's own result and reported when they disagree, but it never
overrides classification.

Use --dry-run to print the instruction payload without launching.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSwarm,
}

func init() {
	swarmCmd.Flags().IntVar(&swarmMaxAgents, "max-agents", 0, "Maximum team size (default from config, 5)")
	swarmCmd.Flags().StringVar(&swarmTypeHint, "type", "", "Advisory task-type hint (never overrides the classifier)")
	swarmCmd.Flags().StringVar(&swarmMode, "mode", "", "Execution mode: cli or api (default from config)")
	swarmCmd.Flags().BoolVar(&swarmDryRun, "dry-run", false, "Print the instruction payload without launching")
}

func runSwarm(cmd *cobra.Command, args []string) error {
	objective := strings.Join(args, " ")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	maxAgents := swarmMaxAgents
	if maxAgents == 0 {
		maxAgents = cfg.Defaults.MaxAgents
	}
	mode := swarmMode
	if mode == "" {
		mode = cfg.Defaults.Mode
	}
	if mode != "cli" && mode != "api" {
		return fmt.Errorf("unknown execution mode %q (want cli or api)", mode)
	}
	if mode == "cli" && !swarmDryRun {
		if err := launcher.CheckCLI(""); err != nil {
			return err
		}
	}

	// Classify and plan.
	classification := planner.Classify(objective)
	if swarmTypeHint != "" && swarmTypeHint != string(classification.TaskType) {
		fmt.Printf("note: hint %q differs from detected task type %q; using the detected type\n",
			swarmTypeHint, classification.TaskType)
	}

	roleTable, err := planner.LoadRoleTable(config.FindProjectConfig())
	if err != nil {
		return err
	}
	plan, err := roleTable.Plan(classification, maxAgents)
	if err != nil {
		return fmt.Errorf("assemble team: %w", err)
	}

	// Record the session before anything launches.
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	db, err := state.OpenProject(cwd)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate session store: %w", err)
	}

	logger, err := coordinator.NewDebugLogger(cfg.Debug.LogPath)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer logger.Close()

	coord := coordinator.New(db,
		coordinator.WithHeartbeatInterval(cfg.Defaults.HeartbeatInterval),
		coordinator.WithLogger(logger),
	)

	session, _, payload, err := coord.CreateSession(objective, classification, plan)
	if err != nil {
		return err
	}

	printPlanSummary(session)

	if swarmDryRun {
		fmt.Println()
		fmt.Println(payload)
		return nil
	}

	runner, err := buildRunner(mode, cfg, cwd)
	if err != nil {
		return err
	}

	if err := coord.MarkActive(session.ID); err != nil {
		return fmt.Errorf("mark session active: %w", err)
	}

	result := runner.Run(context.Background(), session.ID, payload)
	if err := coord.RecordOutcome(session.ID, result.Succeeded); err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}

	printResult(result)
	return nil
}

// buildRunner selects the execution mode.
func buildRunner(mode string, cfg *config.Config, projectRoot string) (launcher.Runner, error) {
	if mode == "api" {
		return launcher.NewAPIRunner(launcher.APIConfig{
			Model:         anthropic.Model(cfg.Anthropic.Model),
			APIKey:        cfg.Anthropic.APIKey,
			UseAWSBedrock: cfg.Anthropic.UseBedrock,
			AWSRegion:     cfg.Anthropic.AWSRegion,
			AWSProfile:    cfg.Anthropic.AWSProfile,
		})
	}
	return &launcher.CLIRunner{
		Timeout:   cfg.Defaults.LaunchTimeout,
		SignalDir: filepath.Join(projectRoot, ".snowswarm", "signals"),
	}, nil
}

func printPlanSummary(s models.Session) {
	bold := color.New(color.Bold)
	bold.Printf("Session %s\n", s.ID)
	fmt.Printf("  Task type:  %s\n", s.Classification.TaskType)
	fmt.Printf("  Complexity: %s\n", s.Classification.Complexity)
	fmt.Printf("  Team (%d):  %s\n", s.TeamPlan.EstimatedAgentCount, renderRoles(s.TeamPlan))
}

func renderRoles(p models.TeamPlan) string {
	roles := make([]string, 0, p.EstimatedAgentCount)
	for _, r := range p.Roles() {
		roles = append(roles, string(r))
	}
	return strings.Join(roles, ", ")
}

func printResult(r launcher.Result) {
	fmt.Println()
	if r.Succeeded {
		color.Green("Execution completed (%s mode, %s)", r.Mode, r.Duration.Round(time.Second))
	} else {
		color.Red("Execution failed (%s mode, %s): %s", r.Mode, r.Duration.Round(time.Second), r.Err)
		fmt.Printf("Session %s is recorded as failed; inspect it with 'snowswarm status %s'.\n",
			r.SessionID, r.SessionID)
	}
}
