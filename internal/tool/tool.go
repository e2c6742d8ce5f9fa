// Package tool drives one scan/review/apply cycle against the collaborators
// the engine needs: a host application that knows where the mods live and a
// presenter that can ask the user questions. Both arrive as explicit
// dependencies; the engine never reaches for global state.
package tool

import (
	"log/slog"
	"os"

	"github.com/bottle-mods/modfixer/internal/model"
	"github.com/bottle-mods/modfixer/internal/planner"
)

// Title used for presenter messages.
const Title = "Mod Version Fixer"

// Host is the mod manager the tool runs inside of. A standalone build wires a
// stand-in that reads the path from config instead.
type Host interface {
	// ModsPath returns the managed mods directory
	ModsPath() (string, error)

	// Refresh asks the host to reload its mod list after an apply.
	// Best-effort: a failure is logged, never fatal.
	Refresh() error
}

// Presenter is the user-facing surface. How it renders is its own business;
// the tool only needs answers.
type Presenter interface {
	// SelectDirectory asks for a mods directory; ok is false on cancel
	SelectDirectory(prompt string) (path string, ok bool)

	// Confirm shows a summary and asks for a yes/no decision
	Confirm(summary string) bool

	// ReviewPlan shows the mismatched records and returns the approved subset
	ReviewPlan(plan *model.UpdatePlan) []*model.Record

	// Info shows an informational message
	Info(title, message string)

	// Warn shows a warning or error message
	Warn(title, message string)
}

// Run executes one full cycle: resolve the mods folder (host first, manual
// selection as fallback), scan, let the user review and confirm, apply, and
// report. It returns an error only for terminal failures; a cancelled review
// or an empty plan is a successful run with nothing to do.
func Run(host Host, ui Presenter, eng planner.Planner, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	root, ok := resolveRoot(host, ui, logger)
	if !ok {
		logger.Info("no mods folder selected, nothing to do")
		return nil
	}

	plan, err := eng.Scan(root)
	if err != nil {
		ui.Warn(Title, "Scan failed: "+err.Error())
		return err
	}

	if plan.IsEmpty() {
		ui.Info(Title, plan.Summary()+"\n\nAll mods are up to date; nothing to change.")
		return nil
	}

	selected := ui.ReviewPlan(plan)
	if len(selected) == 0 {
		eng.Cancel()
		ui.Info(Title, "No mods selected; nothing was changed.")
		return nil
	}

	if !ui.Confirm(confirmMessage(plan, selected)) {
		eng.Cancel()
		ui.Info(Title, "Update cancelled; nothing was changed.")
		return nil
	}

	result, err := eng.Apply(selected)
	if err != nil {
		ui.Warn(Title, "Update failed: "+err.Error())
		return err
	}

	ui.Info(Title+" - Update Complete", finalSummary(plan, result))

	if err := host.Refresh(); err != nil {
		logger.Warn("host refresh failed", "error", err)
	}
	return nil
}

// resolveRoot prefers the host's managed mods directory and falls back to
// manual selection when the host has none or the path is not a directory.
func resolveRoot(host Host, ui Presenter, logger *slog.Logger) (string, bool) {
	root, err := host.ModsPath()
	if err == nil && isDir(root) {
		return root, true
	}
	if err != nil {
		logger.Warn("host did not provide a mods folder", "error", err)
	} else {
		logger.Warn("host mods folder is not usable", "path", root)
	}
	return ui.SelectDirectory("Select Mods Folder")
}

func confirmMessage(plan *model.UpdatePlan, selected []*model.Record) string {
	msg := plan.Summary() + "\n\nMods selected for update:\n"
	for _, rec := range selected {
		msg += "  • " + rec.Identifier + ": " + rec.ChangeString() + "\n"
	}
	return msg + "\nApply these updates?"
}

// finalSummary merges scan counts and apply outcomes into the report the
// presenter shows once everything is done.
func finalSummary(plan *model.UpdatePlan, result *model.ApplyResult) string {
	return plan.Summary() + "\n\n" + result.Summary()
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
