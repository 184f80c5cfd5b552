package store

import (
	"context"
	"testing"
)

func setupDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), t.TempDir()+"/test.db")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSessionLifecycle(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	if err := db.CreateSession(ctx, "s-1", "test topic", "test-model"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	ses, err := db.GetSession(ctx, "s-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if ses.Topic != "test topic" || ses.Model != "test-model" || ses.Status != StatusRunning {
		t.Errorf("unexpected session: %+v", ses)
	}
	if ses.FinishedAt != nil {
		t.Error("running session must not have finished_at")
	}

	if err := db.FinishSession(ctx, "s-1", StatusReported, 4); err != nil {
		t.Fatalf("finish session: %v", err)
	}
	ses, _ = db.GetSession(ctx, "s-1")
	if ses.Status != StatusReported || ses.Iterations != 4 {
		t.Errorf("unexpected finished session: %+v", ses)
	}
	if ses.FinishedAt == nil {
		t.Error("finished session must have finished_at")
	}
}

func TestMessages(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	if err := db.CreateSession(ctx, "s-1", "topic", "m"); err != nil {
		t.Fatal(err)
	}

	if err := db.InsertMessage(ctx, "s-1", "system", "directive", nil, ""); err != nil {
		t.Fatalf("insert message: %v", err)
	}
	toolCalls := []map[string]string{{"id": "tc-1", "name": "take_notes"}}
	if err := db.InsertMessage(ctx, "s-1", "assistant", "", toolCalls, ""); err != nil {
		t.Fatalf("insert message with tool calls: %v", err)
	}
	if err := db.InsertMessage(ctx, "s-1", "tool", `{"success":true}`, nil, "tc-1"); err != nil {
		t.Fatalf("insert tool message: %v", err)
	}

	n, err := db.CountMessages(ctx, "s-1")
	if err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 messages, got %d", n)
	}
}

func TestReports(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	if err := db.CreateSession(ctx, "s-1", "topic", "m"); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveReport(ctx, "s-1", "the report", false); err != nil {
		t.Fatalf("save report: %v", err)
	}

	report, partial, err := db.GetReport(ctx, "s-1")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if report != "the report" || partial {
		t.Errorf("unexpected report: %q partial=%v", report, partial)
	}

	// Saving again replaces (e.g. partial fallback after a failed compile).
	if err := db.SaveReport(ctx, "s-1", "partial text", true); err != nil {
		t.Fatalf("replace report: %v", err)
	}
	report, partial, _ = db.GetReport(ctx, "s-1")
	if report != "partial text" || !partial {
		t.Errorf("expected replaced partial report, got %q partial=%v", report, partial)
	}
}
