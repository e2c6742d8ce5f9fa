package planner

import (
	"github.com/bottle-mods/modfixer/internal/model"
)

// Planner defines the interface for the scan/apply engine.
type Planner interface {
	// Scan classifies every mod folder under root and returns the update plan
	Scan(root string) (*model.UpdatePlan, error)

	// Apply persists newestVersion for the selected subset of the last plan
	Apply(selected []*model.Record) (*model.ApplyResult, error)

	// Cancel discards the current plan without applying it
	Cancel()

	// State returns where the engine is in its scan/review/apply cycle
	State() State
}
