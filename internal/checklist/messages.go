package checklist

import (
	"fmt"
	"strings"
)

// Chat message builders. These strings go back to the caller verbatim
// so a conversational client can show them directly.

// TaskUpdateMessage describes a completion change.
func TaskUpdateMessage(taskID string, completed bool, notes *string) string {
	status := "⏳ Reopened"
	icon := "🔄"
	if completed {
		status = "✅ Completed"
		icon = "🎉"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s **Task Update**\n\n", icon)
	fmt.Fprintf(&b, "📋 **Task ID:** %s\n", taskID)
	fmt.Fprintf(&b, "📊 **Status:** %s\n", status)
	if notes != nil && *notes != "" {
		fmt.Fprintf(&b, "📝 **Notes:** %s\n", *notes)
	}
	fmt.Fprintf(&b, "🕒 **Updated:** %s\n", timeNow().Format("2006-01-02 15:04:05"))
	return b.String()
}

// TaskAddMessage describes a newly added task.
func TaskAddMessage(taskID, description, phase string) string {
	var b strings.Builder
	b.WriteString("\n➕ **New Task Added**\n\n")
	fmt.Fprintf(&b, "📋 **Task ID:** %s\n", taskID)
	fmt.Fprintf(&b, "📝 **Description:** %s\n", description)
	fmt.Fprintf(&b, "🏷️ **Phase:** %s\n", phase)
	b.WriteString("📊 **Status:** Todo\n")
	fmt.Fprintf(&b, "🕒 **Created:** %s\n", timeNow().Format("2006-01-02 15:04:05"))
	return b.String()
}

// ProgressSummaryMessage reports overall completion for a workflow.
func ProgressSummaryMessage(completed, total int) string {
	percent := 0.0
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}

	var b strings.Builder
	b.WriteString("\n📈 **Progress Summary**\n\n")
	fmt.Fprintf(&b, "📊 **Overall Progress:** %d/%d tasks complete (%.1f%%)\n\n", completed, total, percent)
	fmt.Fprintf(&b, "✅ **Completed:** %d tasks\n", completed)
	fmt.Fprintf(&b, "🔄 **Remaining:** %d tasks\n\n", total-completed)
	if total > 0 && completed == total {
		b.WriteString("🎯 **Status:** All tasks completed! Ready for next phase.\n")
	} else {
		fmt.Fprintf(&b, "⏳ **Status:** %d tasks remaining\n", total-completed)
	}
	return b.String()
}

// CheckpointMessage wraps a progress summary in a phase-review gate.
func CheckpointMessage(phase string, completed, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n🛑 **Checkpoint: %s Review**\n\n", phase)
	b.WriteString(ProgressSummaryMessage(completed, total))
	b.WriteString("\n🔍 **Validation Required:**\n")
	b.WriteString("   • All phase tasks completed\n")
	b.WriteString("   • Quality standards met\n")
	b.WriteString("   • Documentation updated\n")
	b.WriteString("   • Ready for next phase\n\n")
	return b.String()
}
