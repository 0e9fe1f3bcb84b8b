package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/snowswarm/snowswarm/internal/state"
	"github.com/snowswarm/snowswarm/internal/tui"
	"github.com/snowswarm/snowswarm/pkg/models"
)

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status [session-id]",
	Short: "Show the recorded state of a swarm session",
	Long: `Display the persisted record of a swarm session.

With a session id, shows that session. Without one, shows the most
recently started session. Use --watch for a live view that follows the
session until it reaches a terminal state.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "Follow the session live until it completes or fails")
}

func runStatus(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	if db == nil {
		fmt.Println("No sessions recorded. Run 'snowswarm swarm \"<objective>\"' to start.")
		return nil
	}
	defer db.Close()

	var session *models.Session
	if len(args) == 1 {
		session, err = db.GetSession(args[0])
		if err != nil {
			return err
		}
		if session == nil {
			return fmt.Errorf("session %s not found", args[0])
		}
	} else {
		session, err = db.LatestSession()
		if err != nil {
			return err
		}
		if session == nil {
			fmt.Println("No sessions recorded. Run 'snowswarm swarm \"<objective>\"' to start.")
			return nil
		}
	}

	if statusWatch {
		_, err := tea.NewProgram(tui.NewWatch(db, session.ID)).Run()
		return err
	}

	displaySession(session)
	return nil
}

// openStore opens the project store if present, falling back to the global
// one. Returns nil without error when neither exists yet.
func openStore() (*state.DB, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	dbPath := state.ProjectDBPath(cwd)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		dbPath = state.GlobalDBPath()
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, nil
	}

	db, err := state.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session store: %w", err)
	}
	return db, nil
}

func displaySession(s *models.Session) {
	bold := color.New(color.Bold)
	bold.Printf("Session %s\n", s.ID)
	fmt.Printf("  Objective:  %s\n", s.Objective)
	fmt.Printf("  Task type:  %s\n", s.Classification.TaskType)
	fmt.Printf("  Complexity: %s\n", s.Classification.Complexity)
	fmt.Printf("  Entities:   %s\n", strings.Join(s.Classification.Entities, ", "))
	fmt.Printf("  Team (%d):  %s\n", s.TeamPlan.EstimatedAgentCount, renderRoles(s.TeamPlan))
	fmt.Printf("  Status:     %s\n", colorStatus(s.Status))
	fmt.Printf("  Started:    %s ago\n", time.Since(s.StartedAt).Round(time.Second))
}

func colorStatus(s models.SessionStatus) string {
	switch s {
	case models.SessionCompleted:
		return color.GreenString(string(s))
	case models.SessionFailed:
		return color.RedString(string(s))
	case models.SessionActive:
		return color.YellowString(string(s))
	default:
		return string(s)
	}
}
