package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput marks malformed or out-of-range caller input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a missing referenced record.
	ErrNotFound = errors.New("record not found")
)

// PartialReconciliationError reports the schedule slots whose expense upsert
// failed during reconciliation. Slots already applied are not rolled back;
// re-running the reconcile fills only the gaps.
type PartialReconciliationError struct {
	Failed []ScheduledPayment
}

func (e *PartialReconciliationError) Error() string {
	slots := make([]string, 0, len(e.Failed))
	for _, p := range e.Failed {
		slots = append(slots, fmt.Sprintf("%d/%d", p.Month, p.Year))
	}
	return fmt.Sprintf("reconciliation failed for %d month(s): %s",
		len(e.Failed), strings.Join(slots, ", "))
}
