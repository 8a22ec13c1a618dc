package utils

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestEscapeAndJoinArgs(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"apply", "--yes"}, want: "apply --yes"},
		{args: []string{"link", "my link", "t"}, want: `link "my link" t`},
		{args: []string{`say "hi"`}, want: `"say \"hi\""`},
		{args: []string{`a\b`}, want: `"a\\b"`},
	}

	for _, tt := range tests {
		if got := EscapeAndJoinArgs(tt.args); got != tt.want {
			t.Fatalf("EscapeAndJoinArgs(%q): expected %v, got %v", tt.args, tt.want, got)
		}
	}
}

func TestConfigLocation(t *testing.T) {
	t.Setenv("LINKFARM_CONFIG", "/etc/linkfarm.toml")
	if got := ConfigLocation(); got != "/etc/linkfarm.toml" {
		t.Fatalf("expected env override, got %v", got)
	}

	if runtime.GOOS != "linux" {
		return
	}

	t.Setenv("LINKFARM_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := ConfigLocation(); got != filepath.Join("/xdg", "linkfarm", "config.toml") {
		t.Fatalf("expected XDG location, got %v", got)
	}
}
