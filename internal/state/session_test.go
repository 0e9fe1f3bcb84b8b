package state

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/snowswarm/snowswarm/pkg/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func testSession(id string, startedAt time.Time) *models.Session {
	return &models.Session{
		ID:        id,
		Objective: "create approval workflow for equipment requests",
		Classification: models.Classification{
			TaskType:   models.TaskProcessAutomation,
			Complexity: models.ComplexityMedium,
			Entities:   []string{"alm_hardware", "sc_request"},
		},
		TeamPlan: models.TeamPlan{
			PrimaryRole:         models.RoleProcessAutomationDeveloper,
			SupportingRoles:     []models.Role{models.RoleSecurityReviewer, models.RoleTester},
			EstimatedAgentCount: 3,
		},
		Status:    models.SessionInitializing,
		StartedAt: startedAt,
		UpdatedAt: startedAt,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	db := testDB(t)

	want := testSession("swarm_1700000000000_ab12cd34", time.Now())
	if err := db.CreateSession(want); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := db.GetSession(want.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil {
		t.Fatal("GetSession returned nil for existing session")
	}

	if got.Objective != want.Objective {
		t.Errorf("Objective = %q, want %q", got.Objective, want.Objective)
	}
	if got.Classification.TaskType != want.Classification.TaskType {
		t.Errorf("TaskType = %v, want %v", got.Classification.TaskType, want.Classification.TaskType)
	}
	if got.Classification.Complexity != want.Classification.Complexity {
		t.Errorf("Complexity = %v, want %v", got.Classification.Complexity, want.Classification.Complexity)
	}
	if len(got.Classification.Entities) != 2 {
		t.Errorf("Entities = %v, want 2 entries", got.Classification.Entities)
	}
	if got.TeamPlan.PrimaryRole != want.TeamPlan.PrimaryRole {
		t.Errorf("PrimaryRole = %v, want %v", got.TeamPlan.PrimaryRole, want.TeamPlan.PrimaryRole)
	}
	if len(got.TeamPlan.SupportingRoles) != 2 {
		t.Errorf("SupportingRoles = %v, want 2 entries", got.TeamPlan.SupportingRoles)
	}
	if got.TeamPlan.EstimatedAgentCount != 3 {
		t.Errorf("EstimatedAgentCount = %d, want 3", got.TeamPlan.EstimatedAgentCount)
	}
	if got.Status != models.SessionInitializing {
		t.Errorf("Status = %v, want %v", got.Status, models.SessionInitializing)
	}
}

func TestGetSession_Missing(t *testing.T) {
	db := testDB(t)

	got, err := db.GetSession("swarm_0_missing")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Errorf("GetSession = %+v, want nil for missing session", got)
	}
}

func TestUpdateStatus_ForwardTransitions(t *testing.T) {
	db := testDB(t)

	s := testSession("swarm_1_fwd", time.Now())
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	for _, status := range []models.SessionStatus{models.SessionActive, models.SessionCompleted} {
		if err := db.UpdateStatus(s.ID, status); err != nil {
			t.Fatalf("UpdateStatus(%v): %v", status, err)
		}
		got, err := db.GetSession(s.ID)
		if err != nil {
			t.Fatalf("GetSession: %v", err)
		}
		if got.Status != status {
			t.Errorf("Status = %v, want %v", got.Status, status)
		}
	}
}

func TestUpdateStatus_RejectsBackwardTransitions(t *testing.T) {
	tests := []struct {
		name string
		from models.SessionStatus
		to   models.SessionStatus
	}{
		{"completed to active", models.SessionCompleted, models.SessionActive},
		{"failed to active", models.SessionFailed, models.SessionActive},
		{"active to initializing", models.SessionActive, models.SessionInitializing},
		{"completed to initializing", models.SessionCompleted, models.SessionInitializing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDB(t)

			s := testSession("swarm_2_back", time.Now())
			s.Status = tt.from
			if err := db.CreateSession(s); err != nil {
				t.Fatalf("CreateSession: %v", err)
			}

			err := db.UpdateStatus(s.ID, tt.to)
			if !errors.Is(err, ErrBackwardTransition) {
				t.Fatalf("UpdateStatus(%v -> %v) = %v, want ErrBackwardTransition", tt.from, tt.to, err)
			}

			got, _ := db.GetSession(s.ID)
			if got.Status != tt.from {
				t.Errorf("Status = %v, want unchanged %v", got.Status, tt.from)
			}
		})
	}
}

func TestUpdateStatus_TerminalOverwriteAllowed(t *testing.T) {
	// completed and failed share a rank; the later writer wins.
	db := testDB(t)

	s := testSession("swarm_3_term", time.Now())
	s.Status = models.SessionCompleted
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := db.UpdateStatus(s.ID, models.SessionFailed); err != nil {
		t.Fatalf("UpdateStatus(failed over completed): %v", err)
	}

	got, _ := db.GetSession(s.ID)
	if got.Status != models.SessionFailed {
		t.Errorf("Status = %v, want %v", got.Status, models.SessionFailed)
	}
}

func TestUpdateStatus_MissingSession(t *testing.T) {
	db := testDB(t)

	if err := db.UpdateStatus("swarm_0_nope", models.SessionActive); err == nil {
		t.Error("UpdateStatus on missing session: expected error, got nil")
	}
}

func TestListSessions_NewestFirst(t *testing.T) {
	db := testDB(t)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"swarm_10_a", "swarm_11_b", "swarm_12_c"} {
		s := testSession(id, base.Add(time.Duration(i)*time.Minute))
		if err := db.CreateSession(s); err != nil {
			t.Fatalf("CreateSession(%s): %v", id, err)
		}
	}

	sessions, err := db.ListSessions(nil)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("ListSessions returned %d sessions, want 3", len(sessions))
	}
	if sessions[0].ID != "swarm_12_c" || sessions[2].ID != "swarm_10_a" {
		t.Errorf("order = [%s %s %s], want newest first",
			sessions[0].ID, sessions[1].ID, sessions[2].ID)
	}
}

func TestListSessions_StatusFilter(t *testing.T) {
	db := testDB(t)

	active := testSession("swarm_20_act", time.Now())
	active.Status = models.SessionActive
	done := testSession("swarm_21_done", time.Now())
	done.Status = models.SessionCompleted

	for _, s := range []*models.Session{active, done} {
		if err := db.CreateSession(s); err != nil {
			t.Fatalf("CreateSession(%s): %v", s.ID, err)
		}
	}

	filter := models.SessionActive
	sessions, err := db.ListSessions(&filter)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != active.ID {
		t.Errorf("filtered sessions = %v, want just %s", sessions, active.ID)
	}
}

func TestLatestSession(t *testing.T) {
	db := testDB(t)

	latest, err := db.LatestSession()
	if err != nil {
		t.Fatalf("LatestSession: %v", err)
	}
	if latest != nil {
		t.Fatalf("LatestSession on empty store = %+v, want nil", latest)
	}

	old := testSession("swarm_30_old", time.Now().Add(-time.Hour))
	recent := testSession("swarm_31_new", time.Now())
	for _, s := range []*models.Session{old, recent} {
		if err := db.CreateSession(s); err != nil {
			t.Fatalf("CreateSession(%s): %v", s.ID, err)
		}
	}

	latest, err = db.LatestSession()
	if err != nil {
		t.Fatalf("LatestSession: %v", err)
	}
	if latest == nil || latest.ID != recent.ID {
		t.Errorf("LatestSession = %+v, want %s", latest, recent.ID)
	}
}

func TestPurgeOldSessions(t *testing.T) {
	db := testDB(t)

	old := testSession("swarm_40_old", time.Now().Add(-48*time.Hour))
	recent := testSession("swarm_41_new", time.Now())
	for _, s := range []*models.Session{old, recent} {
		if err := db.CreateSession(s); err != nil {
			t.Fatalf("CreateSession(%s): %v", s.ID, err)
		}
	}

	purged, err := db.PurgeOldSessions(24 * time.Hour)
	if err != nil {
		t.Fatalf("PurgeOldSessions: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged %d sessions, want 1", purged)
	}

	if got, _ := db.GetSession(old.ID); got != nil {
		t.Errorf("old session %s still present after purge", old.ID)
	}
	if got, _ := db.GetSession(recent.ID); got == nil {
		t.Errorf("recent session %s purged, want kept", recent.ID)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)

	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	s := testSession("swarm_50_mig", time.Now())
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("CreateSession after re-migrate: %v", err)
	}
}
