package coordinator

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/snowswarm/snowswarm/internal/state"
	"github.com/snowswarm/snowswarm/pkg/models"
)

func testStore(t *testing.T) *state.DB {
	t.Helper()

	db, err := state.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func testClassification() models.Classification {
	return models.Classification{
		TaskType:   models.TaskProcessAutomation,
		Complexity: models.ComplexityMedium,
		Entities:   []string{"alm_hardware", "sc_request"},
	}
}

func TestCreateSession_PersistsBeforeReturn(t *testing.T) {
	db := testStore(t)
	c := New(db)

	session, _, _, err := c.CreateSession("create approval workflow for equipment requests",
		testClassification(), testPlan())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	stored, err := db.GetSession(session.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if stored == nil {
		t.Fatal("session not persisted at CreateSession return")
	}
	if stored.Status != models.SessionInitializing {
		t.Errorf("Status = %v, want %v", stored.Status, models.SessionInitializing)
	}
	if stored.Objective != session.Objective {
		t.Errorf("Objective = %q, want %q", stored.Objective, session.Objective)
	}
}

func TestCreateSession_IDFormat(t *testing.T) {
	db := testStore(t)
	at := time.UnixMilli(1700000000000)
	c := New(db,
		WithClock(func() time.Time { return at }),
		WithSuffixSource(func() string { return "ab12cd34" }))

	session, _, _, err := c.CreateSession("fix the incident form", testClassification(), testPlan())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	want := "swarm_1700000000000_ab12cd34"
	if session.ID != want {
		t.Errorf("ID = %q, want %q", session.ID, want)
	}
	if !session.StartedAt.Equal(at) {
		t.Errorf("StartedAt = %v, want %v", session.StartedAt, at)
	}
}

func TestCreateSession_DefaultIDShape(t *testing.T) {
	db := testStore(t)
	c := New(db)

	session, _, _, err := c.CreateSession("fix the incident form", testClassification(), testPlan())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	pattern := regexp.MustCompile(`^swarm_\d+_[0-9a-f]{8}$`)
	if !pattern.MatchString(session.ID) {
		t.Errorf("ID = %q, does not match swarm_<millis>_<8 hex chars>", session.ID)
	}
}

func TestCreateSession_PayloadContent(t *testing.T) {
	db := testStore(t)
	c := New(db)

	objective := "create approval workflow for equipment requests"
	session, contract, payload, err := c.CreateSession(objective, testClassification(), testPlan())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	for _, want := range []string{
		objective,
		session.ID,
		string(models.RoleProcessAutomationDeveloper),
		string(models.RoleSecurityReviewer),
		string(models.RoleTester),
		contract.HeartbeatKey,
		KeyTemplate,
		"```yaml",
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %q", want)
		}
	}

	for _, flag := range contract.ReadinessFlags {
		if !strings.Contains(payload, flag.Key) {
			t.Errorf("payload missing readiness key %q", flag.Key)
		}
	}
}

func TestCreateSession_StoreFailureIsFatal(t *testing.T) {
	// An un-migrated database has no sessions table, so the insert fails and
	// nothing may be handed to execution.
	db, err := state.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	c := New(db)
	_, _, _, err = c.CreateSession("fix the incident form", testClassification(), testPlan())
	if err == nil {
		t.Fatal("CreateSession succeeded against an un-migrated store, want error")
	}
	if !strings.Contains(err.Error(), "no plan executed") {
		t.Errorf("error = %v, want the no-plan-executed wrap", err)
	}
}

func TestLifecycle_MarkActiveAndRecordOutcome(t *testing.T) {
	tests := []struct {
		name      string
		succeeded bool
		want      models.SessionStatus
	}{
		{"success", true, models.SessionCompleted},
		{"failure", false, models.SessionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testStore(t)
			c := New(db)

			session, _, _, err := c.CreateSession("fix the incident form", testClassification(), testPlan())
			if err != nil {
				t.Fatalf("CreateSession: %v", err)
			}

			if err := c.MarkActive(session.ID); err != nil {
				t.Fatalf("MarkActive: %v", err)
			}
			if err := c.RecordOutcome(session.ID, tt.succeeded); err != nil {
				t.Fatalf("RecordOutcome: %v", err)
			}

			stored, _ := db.GetSession(session.ID)
			if stored.Status != tt.want {
				t.Errorf("Status = %v, want %v", stored.Status, tt.want)
			}
		})
	}
}
