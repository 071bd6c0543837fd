package workflow

import "math"

// --- Progress and phase derivation ---
//
// Status, current phase, and progress are a pure function of task
// state. No other code path may set them: after every task mutation the
// manager re-derives all three and writes them back to the workflow
// row. "Current phase" is therefore always the phase of the next
// unfinished work, not a manually advanced pointer — uncompleting a
// task in an earlier phase moves the phase backward, which is expected
// and supported.

// Derivation is the computed workflow state for one task set.
type Derivation struct {
	Progress     int
	Status       Status
	CurrentPhase Phase
}

// ProgressPercent returns the rounded completion percentage, 0 when
// there are no tasks.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// Derive computes progress, status, and current phase from the
// workflow's tasks. The slice must be in template order (position
// ascending); the earliest incomplete task decides the phase.
//
// Rules:
//  1. progress = round(100 * completed / total); 0 when total is 0.
//  2. The earliest incomplete task's phase becomes both status and
//     current phase.
//  3. No incomplete tasks and total > 0 → completed/completed.
//  4. No tasks at all → draft, initial phase.
func Derive(tasks []Task) Derivation {
	if len(tasks) == 0 {
		return Derivation{
			Progress:     0,
			Status:       StatusDraft,
			CurrentPhase: InitialPhase,
		}
	}

	completed := 0
	var firstIncomplete *Task
	for i := range tasks {
		if tasks[i].Completed {
			completed++
		} else if firstIncomplete == nil {
			firstIncomplete = &tasks[i]
		}
	}

	d := Derivation{Progress: ProgressPercent(completed, len(tasks))}

	if firstIncomplete == nil {
		d.Status = StatusCompleted
		d.CurrentPhase = Phase(StatusCompleted)
		return d
	}

	d.CurrentPhase = firstIncomplete.Phase
	d.Status = Status(firstIncomplete.Phase)
	return d
}
