package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded swarm sessions, newest first",
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 10, "Maximum sessions to list")
}

func runSessions(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	if db == nil {
		fmt.Println("No sessions recorded.")
		return nil
	}
	defer db.Close()

	sessions, err := db.ListSessions(nil)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded.")
		return nil
	}
	if sessionsLimit > 0 && len(sessions) > sessionsLimit {
		sessions = sessions[:sessionsLimit]
	}

	for _, s := range sessions {
		fmt.Printf("%s  %-11s %-32s %s\n",
			s.StartedAt.Local().Format(time.DateTime),
			colorStatus(s.Status),
			s.Classification.TaskType,
			s.ID)
	}
	return nil
}
