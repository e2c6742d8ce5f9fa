package planner

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bottle-mods/modfixer/internal/metastore"
	"github.com/bottle-mods/modfixer/internal/model"
	"github.com/bottle-mods/modfixer/internal/version"
)

// MetaFileName is the metadata file expected inside each mod folder.
const MetaFileName = "meta.ini"

// DefaultVersion stands in for mods that have no recorded version at all.
const DefaultVersion = "0.0.0"

// State represents where the engine is in one scan/review/apply cycle
type State string

const (
	// StateIdle means no scan has run yet
	StateIdle State = "Idle"

	// StateScanning means a scan is in progress
	StateScanning State = "Scanning"

	// StatePlanReady means a plan is available for review and apply
	StatePlanReady State = "PlanReady"

	// StateApplying means selected records are being persisted
	StateApplying State = "Applying"

	// StateApplied means the last plan was applied and consumed
	StateApplied State = "Applied"

	// StateCancelled means the last plan was discarded without applying
	StateCancelled State = "Cancelled"
)

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// Service walks a mods folder, builds an update plan, and applies the records
// the caller picked. Scanning is a single sequential pass; all I/O happens on
// the calling goroutine. A Service runs one cycle at a time and is not safe
// for concurrent use.
type Service struct {
	cmp   version.Comparator
	log   *slog.Logger
	state State
	plan  *model.UpdatePlan
}

// NewService creates an engine using the given comparator
func NewService(cmp version.Comparator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cmp:   cmp,
		log:   logger,
		state: StateIdle,
	}
}

// State returns the engine's current state
func (s *Service) State() State {
	return s.state
}

// Cancel discards the current plan, if any, without applying it
func (s *Service) Cancel() {
	if s.plan == nil {
		return
	}
	s.log.Info("update plan cancelled", "plan", s.plan.ID)
	s.plan = nil
	s.state = StateCancelled
}

// Scan enumerates the immediate subdirectories of root and classifies each
// one. Non-directory entries are ignored and not counted. Records are built
// fresh from disk on every call; nothing is cached between scans. An
// unreadable root fails with a *DirectoryAccessError and no partial plan.
func (s *Service) Scan(root string) (*model.UpdatePlan, error) {
	s.state = StateScanning
	s.plan = nil

	entries, err := os.ReadDir(root)
	if err != nil {
		s.state = StateIdle
		return nil, &DirectoryAccessError{Root: root, Err: err}
	}

	plan := &model.UpdatePlan{
		ID:   uuid.NewString(),
		Root: root,
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec := s.classify(root, entry.Name())
		plan.Records = append(plan.Records, rec)
		plan.TotalScanned++
		switch rec.Status {
		case model.StatusMismatched:
			plan.Mismatched = append(plan.Mismatched, rec)
			plan.MismatchedCount++
		case model.StatusSkipped:
			plan.SkippedCount++
		case model.StatusErrored:
			plan.ErrorCount++
		}
	}

	s.plan = plan
	s.state = StatePlanReady
	s.log.Info("scan finished",
		"root", root,
		"scanned", plan.TotalScanned,
		"mismatched", plan.MismatchedCount,
		"skipped", plan.SkippedCount,
		"errors", plan.ErrorCount)
	return plan, nil
}

// classify builds the record for one mod folder and derives its status from
// the metadata file as it is on disk right now.
func (s *Service) classify(root, name string) *model.Record {
	rec := &model.Record{
		Identifier:   name,
		LocationPath: filepath.Join(root, name),
	}
	rec.MetadataPath = filepath.Join(rec.LocationPath, MetaFileName)

	meta, err := metastore.Load(rec.MetadataPath)
	switch {
	case errors.Is(err, metastore.ErrNotFound):
		rec.Status = model.StatusSkipped
		rec.SkipReason = SkipNoMetadata
		s.log.Debug("skipping mod", "mod", name, "reason", rec.SkipReason)
		return rec
	case err != nil:
		rec.Status = model.StatusErrored
		rec.ErrorDetail = fmt.Sprintf("read error: %v", err)
		s.log.Warn("cannot read metadata", "mod", name, "error", err)
		return rec
	}

	if !meta.HasSection(metastore.SectionGeneral) {
		rec.Status = model.StatusSkipped
		rec.SkipReason = SkipNoGeneral
		s.log.Debug("skipping mod", "mod", name, "reason", rec.SkipReason)
		return rec
	}

	rec.NewestVersion = meta.Value(metastore.SectionGeneral, metastore.KeyNewestVersion, "")
	if rec.NewestVersion == "" {
		rec.Status = model.StatusSkipped
		rec.SkipReason = SkipNoNewestVersion
		s.log.Debug("skipping mod", "mod", name, "reason", rec.SkipReason)
		return rec
	}

	rec.RecordedVersion = meta.Value(metastore.SectionGeneral, metastore.KeyVersion, "")
	if rec.RecordedVersion == "" {
		rec.RecordedVersion = DefaultVersion
	}

	if s.cmp.Equal(rec.RecordedVersion, rec.NewestVersion) {
		rec.Status = model.StatusUpToDate
	} else {
		rec.Status = model.StatusMismatched
		s.log.Debug("version mismatch", "mod", name, "recorded", rec.RecordedVersion, "newest", rec.NewestVersion)
	}
	return rec
}

// Apply persists newestVersion into version for each selected record. The
// selection must be a subset of the current plan's mismatched set; anything
// else is a caller error and nothing is written. Records are applied
// independently: one failed write is recorded on that record's outcome and
// the rest proceed. The plan is consumed whether or not every write succeeded.
func (s *Service) Apply(selected []*model.Record) (*model.ApplyResult, error) {
	if s.state != StatePlanReady || s.plan == nil {
		return nil, ErrNoPlan
	}
	for _, rec := range selected {
		if _, ok := s.plan.FindMismatched(rec.Identifier); !ok {
			return nil, &NotInPlanError{Identifier: rec.Identifier}
		}
	}

	s.state = StateApplying
	result := &model.ApplyResult{PlanID: s.plan.ID}
	for _, rec := range selected {
		planned, _ := s.plan.FindMismatched(rec.Identifier)
		outcome := model.ApplyOutcome{
			Record:     planned,
			OldVersion: planned.RecordedVersion,
			NewVersion: planned.NewestVersion,
		}
		if err := s.applyOne(planned); err != nil {
			outcome.Err = err
			result.ErrorCount++
			s.log.Error("update failed", "mod", planned.Identifier, "error", err)
		} else {
			result.AppliedCount++
			s.log.Info("mod updated", "mod", planned.Identifier, "from", outcome.OldVersion, "to", outcome.NewVersion)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	s.plan = nil
	s.state = StateApplied
	return result, nil
}

// applyOne reloads the metadata so edits made to unrelated keys after the
// scan survive the rewrite. The planned newestVersion still wins on the
// version key: the scan/apply window is best-effort, last writer wins.
func (s *Service) applyOne(rec *model.Record) error {
	meta, err := metastore.Load(rec.MetadataPath)
	if err != nil {
		return err
	}
	meta.SetValue(metastore.SectionGeneral, metastore.KeyVersion, rec.NewestVersion)
	return meta.Save()
}
