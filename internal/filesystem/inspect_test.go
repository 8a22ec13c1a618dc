package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	other := filepath.Join(dir, "other")
	for _, p := range []string{target, other} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write %v: %v", p, err)
		}
	}

	mustSymlink := func(target, link string) {
		if err := os.Symlink(target, link); err != nil {
			t.Fatalf("failed to symlink: %v", err)
		}
	}

	okLink := filepath.Join(dir, "ok")
	mustSymlink(target, okLink)

	retargetLink := filepath.Join(dir, "retarget")
	mustSymlink(other, retargetLink)

	brokenLink := filepath.Join(dir, "broken")
	missingTarget := filepath.Join(dir, "gone")
	mustSymlink(missingTarget, brokenLink)

	conflict := filepath.Join(dir, "conflict")
	if err := os.Mkdir(conflict, 0o755); err != nil {
		t.Fatalf("failed to mkdir: %v", err)
	}

	tests := []struct {
		name        string
		link        string
		target      string
		wantState   LinkState
		wantCurrent string
	}{
		{name: "missing", link: filepath.Join(dir, "nope"), target: target, wantState: LinkMissing},
		{name: "ok", link: okLink, target: target, wantState: LinkOK, wantCurrent: target},
		{name: "retarget", link: retargetLink, target: target, wantState: LinkRetarget, wantCurrent: other},
		{name: "broken", link: brokenLink, target: missingTarget, wantState: LinkBroken, wantCurrent: missingTarget},
		{name: "conflict", link: conflict, target: target, wantState: LinkConflict},
	}

	fsys := LocalFilesystem{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, current, err := Inspect(fsys, tt.link, tt.target)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if state != tt.wantState {
				t.Fatalf("expected state %v, got %v", tt.wantState, state)
			}
			if current != tt.wantCurrent {
				t.Fatalf("expected current target %q, got %q", tt.wantCurrent, current)
			}
		})
	}
}
