package status

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/linkfarm/linkfarm/internal/filesystem"
	"github.com/linkfarm/linkfarm/internal/links"
	"github.com/linkfarm/linkfarm/internal/manifest"
)

func statusesFor(names ...string) []links.EntryStatus {
	var statuses []links.EntryStatus
	for _, name := range names {
		statuses = append(statuses, links.EntryStatus{
			Entry: manifest.Entry{Name: name, Path: "/x/" + name, Target: "t"},
		})
	}
	return statuses
}

func TestFilterStatuses(t *testing.T) {
	statuses := statusesFor("lib/python/foo.py", "bin/tool", "lib/python/bar.py")

	filtered := filterStatuses(statuses, "pyfoo")
	if len(filtered) != 1 || filtered[0].Entry.Name != "lib/python/foo.py" {
		t.Fatalf("expected only foo.py to match, got %+v", filtered)
	}

	if got := filterStatuses(statuses, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestRenderTable(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	dir := t.TempDir()
	link := filepath.Join(dir, "ok-link")
	if err := os.Symlink("target", link); err != nil {
		t.Fatalf("failed to symlink: %v", err)
	}

	statuses := []links.EntryStatus{
		{Entry: manifest.Entry{Name: "ok-link", Path: link, Target: "target"}, State: filesystem.LinkOK, Current: "target"},
		{Entry: manifest.Entry{Name: "moved", Path: filepath.Join(dir, "moved"), Target: "new"}, State: filesystem.LinkRetarget, Current: "old"},
		{Entry: manifest.Entry{Name: "absent", Path: filepath.Join(dir, "absent"), Target: "x"}, State: filesystem.LinkMissing},
	}

	var buf bytes.Buffer
	renderTable(&buf, statuses, true)
	out := buf.String()

	for _, want := range []string{"MODIFIED", "ok-link", "new (now old)", "retarget", "missing"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected table to contain %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	renderTable(&buf, statuses, false)
	if strings.Contains(buf.String(), "MODIFIED") {
		t.Fatalf("remote tables should not have a modified column:\n%s", buf.String())
	}
}
