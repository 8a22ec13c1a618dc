package links

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/linkfarm/linkfarm/internal/filesystem"
	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/manifest"
)

type fixture struct {
	dir     string
	entries []manifest.Entry
}

// Sets up one entry per link state:
// new (missing), same (ok), moved (retarget), file (conflict).
func newFixture(t *testing.T) fixture {
	t.Helper()

	dir := t.TempDir()
	write := func(name string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(name), 0o644); err != nil {
			t.Fatalf("failed to write %v: %v", p, err)
		}
		return p
	}

	a := write("a.txt")
	b := write("b.txt")
	conflict := write("file")

	if err := os.Symlink(a, filepath.Join(dir, "same")); err != nil {
		t.Fatalf("failed to symlink: %v", err)
	}
	if err := os.Symlink(b, filepath.Join(dir, "moved")); err != nil {
		t.Fatalf("failed to symlink: %v", err)
	}

	return fixture{
		dir: dir,
		entries: []manifest.Entry{
			{Name: "new", Path: filepath.Join(dir, "x", "y", "new"), Target: a},
			{Name: "same", Path: filepath.Join(dir, "same"), Target: a},
			{Name: "moved", Path: filepath.Join(dir, "moved"), Target: a},
			{Name: "file", Path: conflict, Target: a},
		},
	}
}

func actions(report *Report) []Action {
	var result []Action
	for _, r := range report.Results {
		result = append(result, r.Action)
	}
	return result
}

func assertActions(t *testing.T, report *Report, want ...Action) {
	t.Helper()

	got := actions(report)
	if len(got) != len(want) {
		t.Fatalf("expected actions %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected actions %v, got %v", want, got)
		}
	}
}

func readLink(t *testing.T, path string) string {
	t.Helper()

	dest, err := os.Readlink(path)
	if err != nil {
		t.Fatalf("failed to read link %v: %v", path, err)
	}
	return dest
}

func TestApply(t *testing.T) {
	f := newFixture(t)

	report, err := Apply(filesystem.LocalFilesystem{}, logger.NewNoOpLogger(), f.entries, ApplyOptions{})

	if !errors.Is(err, filesystem.ErrNotSymlink) {
		t.Fatalf("expected joined ErrNotSymlink, got %v", err)
	}

	assertActions(t, report, ActionCreated, ActionUnchanged, ActionReplaced, ActionFailed)

	a := f.entries[0].Target
	for _, name := range []string{"x/y/new", "same", "moved"} {
		if dest := readLink(t, filepath.Join(f.dir, name)); dest != a {
			t.Fatalf("expected %v to point to %v, got %v", name, a, dest)
		}
	}

	if report.Count(ActionFailed) != 1 {
		t.Fatalf("expected one failure, got %d", report.Count(ActionFailed))
	}

	content, err := os.ReadFile(filepath.Join(f.dir, "file"))
	if err != nil || string(content) != "file" {
		t.Fatalf("conflicting file should be untouched, got %q (%v)", content, err)
	}
}

func TestApply_DryRunTouchesNothing(t *testing.T) {
	f := newFixture(t)

	report, err := Apply(filesystem.LocalFilesystem{}, logger.NewNoOpLogger(), f.entries[:3], ApplyOptions{DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertActions(t, report, ActionSkipped, ActionUnchanged, ActionSkipped)

	if _, err := os.Lstat(filepath.Join(f.dir, "x")); !os.IsNotExist(err) {
		t.Fatalf("dry run should not create directories, got %v", err)
	}

	if dest := readLink(t, filepath.Join(f.dir, "moved")); dest != filepath.Join(f.dir, "b.txt") {
		t.Fatalf("dry run should not retarget links, got %v", dest)
	}
}

func TestApply_DeclinedRetarget(t *testing.T) {
	f := newFixture(t)

	var asked []string
	confirm := func(entry manifest.Entry, current string) (bool, error) {
		asked = append(asked, entry.Name+"="+filepath.Base(current))
		return false, nil
	}

	report, err := Apply(filesystem.LocalFilesystem{}, logger.NewNoOpLogger(), f.entries[:3], ApplyOptions{Confirm: confirm})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertActions(t, report, ActionCreated, ActionUnchanged, ActionSkipped)

	if len(asked) != 1 || asked[0] != "moved=b.txt" {
		t.Fatalf("expected a single confirmation for moved, got %v", asked)
	}

	if dest := readLink(t, filepath.Join(f.dir, "moved")); dest != filepath.Join(f.dir, "b.txt") {
		t.Fatalf("declined link should be untouched, got %v", dest)
	}
}

func TestApply_ConfirmError(t *testing.T) {
	f := newFixture(t)
	errPrompt := errors.New("stdin closed")

	_, err := Apply(filesystem.LocalFilesystem{}, logger.NewNoOpLogger(), f.entries[2:3], ApplyOptions{
		Confirm: func(manifest.Entry, string) (bool, error) { return false, errPrompt },
	})
	if !errors.Is(err, errPrompt) {
		t.Fatalf("expected prompt error, got %v", err)
	}
}

func TestApply_BrokenLinkIsLeftAlone(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	target := filepath.Join(dir, "missing")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("failed to symlink: %v", err)
	}

	report, err := Apply(filesystem.LocalFilesystem{}, logger.NewNoOpLogger(), []manifest.Entry{
		{Name: "link", Path: link, Target: target},
	}, ApplyOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Results[0].State != filesystem.LinkBroken || report.Results[0].Action != ActionUnchanged {
		t.Fatalf("unexpected result: %+v", report.Results[0])
	}
}

func TestStatus(t *testing.T) {
	f := newFixture(t)

	statuses := Status(filesystem.LocalFilesystem{}, f.entries)

	want := []filesystem.LinkState{
		filesystem.LinkMissing,
		filesystem.LinkOK,
		filesystem.LinkRetarget,
		filesystem.LinkConflict,
	}

	if len(statuses) != len(want) {
		t.Fatalf("expected %d statuses, got %d", len(want), len(statuses))
	}

	for i, s := range statuses {
		if s.State != want[i] {
			t.Fatalf("entry %v: expected %v, got %v", s.Entry.Name, want[i], s.State)
		}
	}

	if statuses[2].Current != filepath.Join(f.dir, "b.txt") {
		t.Fatalf("expected current target of moved link, got %v", statuses[2].Current)
	}
}
