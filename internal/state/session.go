package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/snowswarm/snowswarm/pkg/models"
)

// ErrBackwardTransition is returned when a status update would move a
// session backwards in its lifecycle. Forward transitions race with
// last-writer-wins semantics; rollbacks are rejected.
var ErrBackwardTransition = fmt.Errorf("session status cannot move backwards")

const sessionColumns = `id, objective, task_type, complexity, entities,
	primary_role, supporting_roles, agent_count, status, started_at, updated_at`

// CreateSession persists a new session snapshot. The write must succeed
// before the caller hands the plan to execution; a status query racing the
// launch must never observe a missing session.
func (db *DB) CreateSession(s *models.Session) error {
	entities, _ := json.Marshal(s.Classification.Entities)
	roles, _ := json.Marshal(s.TeamPlan.SupportingRoles)

	_, err := db.Exec(`
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Objective, string(s.Classification.TaskType), string(s.Classification.Complexity),
		string(entities), string(s.TeamPlan.PrimaryRole), string(roles),
		s.TeamPlan.EstimatedAgentCount, string(s.Status), formatTime(s.StartedAt), formatTime(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID. Returns nil without error when the
// session does not exist.
func (db *DB) GetSession(id string) (*models.Session, error) {
	row := db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM sessions WHERE id = ?
	`, id)

	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// UpdateStatus transitions a session to the given status. Transitions are
// forward-only: moving a completed or failed session back to active, or
// any session back to initializing, returns ErrBackwardTransition.
func (db *DB) UpdateStatus(id string, status models.SessionStatus) error {
	current, err := db.GetSession(id)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("update status: session %s not found", id)
	}
	if status.Rank() < current.Status.Rank() {
		return fmt.Errorf("update status %s -> %s: %w", current.Status, status, ErrBackwardTransition)
	}

	_, err = db.Exec(`
		UPDATE sessions SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// ListSessions lists sessions newest first, optionally filtered by status.
func (db *DB) ListSessions(status *models.SessionStatus) ([]models.Session, error) {
	var rows *sql.Rows
	var err error

	if status != nil {
		rows, err = db.Query(`
			SELECT `+sessionColumns+`
			FROM sessions WHERE status = ? ORDER BY started_at DESC
		`, string(*status))
	} else {
		rows, err = db.Query(`
			SELECT ` + sessionColumns + `
			FROM sessions ORDER BY started_at DESC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, nil
}

// LatestSession returns the most recently started session, or nil when the
// store is empty.
func (db *DB) LatestSession() (*models.Session, error) {
	sessions, err := db.ListSessions(nil)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*models.Session, error) {
	var s models.Session
	var taskType, complexity, entities, primaryRole, roles, status string
	var startedAt, updatedAt string

	err := row.Scan(&s.ID, &s.Objective, &taskType, &complexity, &entities,
		&primaryRole, &roles, &s.TeamPlan.EstimatedAgentCount, &status, &startedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	s.Classification.TaskType = models.TaskType(taskType)
	s.Classification.Complexity = models.Complexity(complexity)
	json.Unmarshal([]byte(entities), &s.Classification.Entities)
	s.TeamPlan.PrimaryRole = models.Role(primaryRole)
	json.Unmarshal([]byte(roles), &s.TeamPlan.SupportingRoles)
	s.Status = models.SessionStatus(status)
	s.StartedAt, _ = parseTime(startedAt)
	s.UpdatedAt, _ = parseTime(updatedAt)
	return &s, nil
}
