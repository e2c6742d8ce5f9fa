package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bottle-mods/modfixer/internal/metastore"
	"github.com/bottle-mods/modfixer/internal/model"
	"github.com/bottle-mods/modfixer/internal/version"
)

func newTestService(t *testing.T, mode version.Mode) *Service {
	t.Helper()
	return NewService(version.NewComparator(mode), nil)
}

func writeMod(t *testing.T, root, name, meta string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if meta != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, MetaFileName), []byte(meta), 0o644))
	}
}

// modsFixture builds the three-folder layout: A needs an update, B is
// numerically up to date, C has no meta.ini at all.
func modsFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeMod(t, root, "A", "[General]\nversion=1.0\nnewestVersion=1.1\n")
	writeMod(t, root, "B", "[General]\nversion=2.0\nnewestVersion=2.0.0\n")
	writeMod(t, root, "C", "")
	return root
}

func recordByID(t *testing.T, plan *model.UpdatePlan, id string) *model.Record {
	t.Helper()
	for _, rec := range plan.Records {
		if rec.Identifier == id {
			return rec
		}
	}
	t.Fatalf("record %q not found in plan", id)
	return nil
}

func TestService_Scan_Classification(t *testing.T) {
	root := modsFixture(t)
	svc := newTestService(t, version.ModeNumeric)

	plan, err := svc.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, StatePlanReady, svc.State())

	assert.Equal(t, 3, plan.TotalScanned)
	assert.Equal(t, 1, plan.MismatchedCount)
	assert.Equal(t, 1, plan.SkippedCount)
	assert.Equal(t, 0, plan.ErrorCount)
	assert.NotEmpty(t, plan.ID)

	a := recordByID(t, plan, "A")
	assert.Equal(t, model.StatusMismatched, a.Status)
	assert.Equal(t, "1.0", a.RecordedVersion)
	assert.Equal(t, "1.1", a.NewestVersion)

	b := recordByID(t, plan, "B")
	assert.Equal(t, model.StatusUpToDate, b.Status, "2.0 and 2.0.0 are numerically equal")

	c := recordByID(t, plan, "C")
	assert.Equal(t, model.StatusSkipped, c.Status)
	assert.Equal(t, SkipNoMetadata, c.SkipReason)

	require.Len(t, plan.Mismatched, 1)
	assert.Equal(t, "A", plan.Mismatched[0].Identifier)
}

func TestService_Scan_RawMode(t *testing.T) {
	root := modsFixture(t)
	svc := newTestService(t, version.ModeRaw)

	plan, err := svc.Scan(root)
	require.NoError(t, err)

	// raw comparison sees 2.0 != 2.0.0
	assert.Equal(t, 2, plan.MismatchedCount)
	assert.Equal(t, model.StatusMismatched, recordByID(t, plan, "B").Status)
}

func TestService_Scan_SkipAndErrorConditions(t *testing.T) {
	root := t.TempDir()
	writeMod(t, root, "no-general", "[installedFiles]\n1\\modid=42\n")
	writeMod(t, root, "no-newest", "[General]\nversion=1.0\n")
	writeMod(t, root, "broken", "not an ini file at all\n")
	writeMod(t, root, "no-recorded", "[General]\nnewestVersion=0.0.0\n")
	// stray file, not a mod folder
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("hi"), 0o644))

	svc := newTestService(t, version.ModeNumeric)
	plan, err := svc.Scan(root)
	require.NoError(t, err)

	assert.Equal(t, 4, plan.TotalScanned, "non-directory entries are not counted")
	assert.Equal(t, 2, plan.SkippedCount)
	assert.Equal(t, 1, plan.ErrorCount)

	noGeneral := recordByID(t, plan, "no-general")
	assert.Equal(t, model.StatusSkipped, noGeneral.Status, "missing [General] is a skip, never an error")
	assert.Equal(t, SkipNoGeneral, noGeneral.SkipReason)

	noNewest := recordByID(t, plan, "no-newest")
	assert.Equal(t, model.StatusSkipped, noNewest.Status)
	assert.Equal(t, SkipNoNewestVersion, noNewest.SkipReason)

	broken := recordByID(t, plan, "broken")
	assert.Equal(t, model.StatusErrored, broken.Status)
	assert.Contains(t, broken.ErrorDetail, "read error:")

	// empty recorded version counts as 0.0.0, equal to newestVersion=0.0.0
	noRecorded := recordByID(t, plan, "no-recorded")
	assert.Equal(t, model.StatusUpToDate, noRecorded.Status)
	assert.Equal(t, DefaultVersion, noRecorded.RecordedVersion)
}

func TestService_Scan_MissingRecordedVersionMismatch(t *testing.T) {
	root := t.TempDir()
	writeMod(t, root, "fresh", "[General]\nnewestVersion=1.4\n")

	svc := newTestService(t, version.ModeNumeric)
	plan, err := svc.Scan(root)
	require.NoError(t, err)

	rec := recordByID(t, plan, "fresh")
	assert.Equal(t, model.StatusMismatched, rec.Status)
	assert.Equal(t, DefaultVersion, rec.RecordedVersion)
}

func TestService_Scan_BadRoot(t *testing.T) {
	svc := newTestService(t, version.ModeNumeric)

	plan, err := svc.Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.Nil(t, plan, "no partial plan on a root failure")

	var dirErr *DirectoryAccessError
	assert.ErrorAs(t, err, &dirErr)
	assert.Equal(t, StateIdle, svc.State())
}

func TestService_ApplyAndRescan(t *testing.T) {
	root := modsFixture(t)
	svc := newTestService(t, version.ModeNumeric)

	plan, err := svc.Scan(root)
	require.NoError(t, err)

	result, err := svc.Apply(plan.Mismatched)
	require.NoError(t, err)
	assert.Equal(t, StateApplied, svc.State())
	assert.Equal(t, plan.ID, result.PlanID)
	assert.Equal(t, 1, result.AppliedCount)
	assert.Equal(t, 0, result.ErrorCount)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, "1.0", result.Outcomes[0].OldVersion)
	assert.Equal(t, "1.1", result.Outcomes[0].NewVersion)

	// the write landed in A's meta.ini and left B untouched
	metaA, err := metastore.Load(filepath.Join(root, "A", MetaFileName))
	require.NoError(t, err)
	assert.Equal(t, "1.1", metaA.Value(metastore.SectionGeneral, metastore.KeyVersion, ""))

	metaB, err := metastore.Load(filepath.Join(root, "B", MetaFileName))
	require.NoError(t, err)
	assert.Equal(t, "2.0", metaB.Value(metastore.SectionGeneral, metastore.KeyVersion, ""))

	// applying made the set idempotent: a fresh scan finds nothing to do
	rescan, err := svc.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, 0, rescan.MismatchedCount)
	assert.Equal(t, model.StatusUpToDate, recordByID(t, rescan, "A").Status)
}

func TestService_Apply_SubsetOnly(t *testing.T) {
	root := t.TempDir()
	writeMod(t, root, "A", "[General]\nversion=1.0\nnewestVersion=1.1\n")
	writeMod(t, root, "B", "[General]\nversion=2.0\nnewestVersion=2.1\n")

	svc := newTestService(t, version.ModeNumeric)
	plan, err := svc.Scan(root)
	require.NoError(t, err)
	require.Equal(t, 2, plan.MismatchedCount)

	a, ok := plan.FindMismatched("A")
	require.True(t, ok)

	result, err := svc.Apply([]*model.Record{a})
	require.NoError(t, err)
	assert.Equal(t, 1, result.AppliedCount)

	// only the selected record was rewritten
	metaB, err := metastore.Load(filepath.Join(root, "B", MetaFileName))
	require.NoError(t, err)
	assert.Equal(t, "2.0", metaB.Value(metastore.SectionGeneral, metastore.KeyVersion, ""))
}

func TestService_Apply_WithoutPlan(t *testing.T) {
	svc := newTestService(t, version.ModeNumeric)

	_, err := svc.Apply(nil)
	assert.ErrorIs(t, err, ErrNoPlan)
}

func TestService_Apply_PlanConsumed(t *testing.T) {
	root := modsFixture(t)
	svc := newTestService(t, version.ModeNumeric)

	plan, err := svc.Scan(root)
	require.NoError(t, err)

	_, err = svc.Apply(plan.Mismatched)
	require.NoError(t, err)

	_, err = svc.Apply(plan.Mismatched)
	assert.ErrorIs(t, err, ErrNoPlan, "a plan can be applied once")
}

func TestService_Apply_RecordNotInPlan(t *testing.T) {
	root := modsFixture(t)
	svc := newTestService(t, version.ModeNumeric)

	_, err := svc.Scan(root)
	require.NoError(t, err)

	intruder := &model.Record{Identifier: "Z", NewestVersion: "9.9"}
	_, err = svc.Apply([]*model.Record{intruder})

	var notInPlan *NotInPlanError
	require.ErrorAs(t, err, &notInPlan)
	assert.Equal(t, "Z", notInPlan.Identifier)
	assert.Equal(t, StatePlanReady, svc.State(), "a caller error leaves the plan intact")
}

func TestService_Apply_IndependentFailures(t *testing.T) {
	root := t.TempDir()
	writeMod(t, root, "doomed", "[General]\nversion=1.0\nnewestVersion=1.1\n")
	writeMod(t, root, "fine", "[General]\nversion=2.0\nnewestVersion=2.1\n")

	svc := newTestService(t, version.ModeNumeric)
	plan, err := svc.Scan(root)
	require.NoError(t, err)
	require.Equal(t, 2, plan.MismatchedCount)

	// the folder vanishes between scan and apply
	require.NoError(t, os.RemoveAll(filepath.Join(root, "doomed")))

	result, err := svc.Apply(plan.Mismatched)
	require.NoError(t, err, "per-record failures never abort the batch")
	assert.Equal(t, 1, result.AppliedCount)
	assert.Equal(t, 1, result.ErrorCount)

	metaFine, err := metastore.Load(filepath.Join(root, "fine", MetaFileName))
	require.NoError(t, err)
	assert.Equal(t, "2.1", metaFine.Value(metastore.SectionGeneral, metastore.KeyVersion, ""))

	for _, out := range result.Outcomes {
		if out.Record.Identifier == "doomed" {
			assert.Error(t, out.Err)
		} else {
			assert.NoError(t, out.Err)
		}
	}
}

func TestService_Apply_PreservesUnrelatedEdits(t *testing.T) {
	root := t.TempDir()
	writeMod(t, root, "A", "[General]\nversion=1.0\nnewestVersion=1.1\nmodid=42\n")

	svc := newTestService(t, version.ModeNumeric)
	plan, err := svc.Scan(root)
	require.NoError(t, err)

	// someone edits an unrelated key between scan and apply
	metaPath := filepath.Join(root, "A", MetaFileName)
	meta, err := metastore.Load(metaPath)
	require.NoError(t, err)
	meta.SetValue(metastore.SectionGeneral, "category", "armor")
	require.NoError(t, meta.Save())

	_, err = svc.Apply(plan.Mismatched)
	require.NoError(t, err)

	reloaded, err := metastore.Load(metaPath)
	require.NoError(t, err)
	assert.Equal(t, "1.1", reloaded.Value(metastore.SectionGeneral, metastore.KeyVersion, ""))
	assert.Equal(t, "armor", reloaded.Value(metastore.SectionGeneral, "category", ""))
	assert.Equal(t, "42", reloaded.Value(metastore.SectionGeneral, "modid", ""))
}

func TestService_Cancel(t *testing.T) {
	root := modsFixture(t)
	svc := newTestService(t, version.ModeNumeric)

	_, err := svc.Scan(root)
	require.NoError(t, err)

	svc.Cancel()
	assert.Equal(t, StateCancelled, svc.State())

	_, err = svc.Apply(nil)
	assert.ErrorIs(t, err, ErrNoPlan)
}
