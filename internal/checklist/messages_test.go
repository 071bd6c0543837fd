package checklist

import (
	"strings"
	"testing"
)

// --- TaskUpdateMessage ---

func TestTaskUpdateMessage_Completed(t *testing.T) {
	notes := "verified against staging"
	msg := TaskUpdateMessage("task_1", true, &notes)

	for _, want := range []string{"🎉", "task_1", "✅ Completed", "verified against staging"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestTaskUpdateMessage_Reopened(t *testing.T) {
	msg := TaskUpdateMessage("task_1", false, nil)
	if !strings.Contains(msg, "⏳ Reopened") {
		t.Errorf("message missing reopened status:\n%s", msg)
	}
	if strings.Contains(msg, "Notes") {
		t.Errorf("message has notes section without notes:\n%s", msg)
	}
}

// --- ProgressSummaryMessage ---

func TestProgressSummaryMessage_InProgress(t *testing.T) {
	msg := ProgressSummaryMessage(7, 10)
	for _, want := range []string{"7/10 tasks complete (70.0%)", "3 tasks remaining"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestProgressSummaryMessage_AllDone(t *testing.T) {
	msg := ProgressSummaryMessage(10, 10)
	if !strings.Contains(msg, "All tasks completed!") {
		t.Errorf("message missing completion banner:\n%s", msg)
	}
}

func TestProgressSummaryMessage_Empty(t *testing.T) {
	msg := ProgressSummaryMessage(0, 0)
	if !strings.Contains(msg, "0/0 tasks complete (0.0%)") {
		t.Errorf("unexpected empty-workflow message:\n%s", msg)
	}
}

// --- CheckpointMessage ---

func TestCheckpointMessage(t *testing.T) {
	msg := CheckpointMessage("architecture", 6, 24)
	for _, want := range []string{
		"🛑 **Checkpoint: architecture Review**",
		"6/24 tasks complete",
		"Validation Required",
		"Ready for next phase",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}
