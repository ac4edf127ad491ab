package domain

// UpdateOutcome resultado informativo de una actualización que encontró su objetivo.
// "No encontrado" no es un outcome: se reporta como ErrNotFound.
type UpdateOutcome string

const (
	OutcomeUpdated  UpdateOutcome = "updated"
	OutcomeNoChange UpdateOutcome = "no_change"
)
