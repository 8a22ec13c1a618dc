package ssh

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/settings"
)

func writeSSHConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write ssh config: %v", err)
	}
	return path
}

func TestResolveFromConfig(t *testing.T) {
	configFile := writeSSHConfig(t, `Host builder
  HostName %h.internal.example.com
  User ci
  Port 2222

Host *
  User fallback
`)

	tests := []struct {
		name  string
		input Target
		want  Target
	}{
		{
			name:  "alias fills everything",
			input: Target{Host: "builder"},
			want:  Target{User: "ci", Host: "builder.internal.example.com", Port: 2222},
		},
		{
			name:  "explicit values win",
			input: Target{User: "alice", Host: "builder", Port: 22},
			want:  Target{User: "alice", Host: "builder.internal.example.com", Port: 22},
		},
		{
			name:  "wildcard only",
			input: Target{Host: "other"},
			want:  Target{User: "fallback", Host: "other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFromConfig(tt.input, configFile)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestResolveFromConfig_MissingFile(t *testing.T) {
	in := Target{Host: "builder"}

	got, err := resolveFromConfig(in, filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != in {
		t.Fatalf("expected target to be unchanged, got %+v", got)
	}
}

func TestResolveFromConfig_InvalidPort(t *testing.T) {
	configFile := writeSSHConfig(t, "Host bad\n  Port 99999\n")

	if _, err := resolveFromConfig(Target{Host: "bad"}, configFile); err == nil {
		t.Fatalf("expected error for invalid port")
	}
}

func TestDial_RequiresAgent(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")

	cfg := settings.SSHSettings{
		ConfigFile: filepath.Join(t.TempDir(), "nope"),
	}

	_, err := Dial("alice@example.com", cfg, logger.NewNoOpLogger())
	if !errors.Is(err, ErrAgentNotStarted) {
		t.Fatalf("expected ErrAgentNotStarted, got %v", err)
	}
}

func TestDial_InvalidHost(t *testing.T) {
	_, err := Dial("alice@", settings.SSHSettings{}, logger.NewNoOpLogger())
	if err == nil {
		t.Fatalf("expected error for empty host")
	}
}

func TestKnownHostsFiles(t *testing.T) {
	cfg := settings.SSHSettings{KnownHostsFiles: []string{"/a", "/b"}}
	if got := knownHostsFiles(cfg); len(got) != 2 || got[0] != "/a" {
		t.Fatalf("expected configured files, got %v", got)
	}

	t.Setenv("HOME", "/home/test")
	got := knownHostsFiles(settings.SSHSettings{})
	if len(got) != 1 || got[0] != "/home/test/.ssh/known_hosts" {
		t.Fatalf("expected default known_hosts, got %v", got)
	}
}
