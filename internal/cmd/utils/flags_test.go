package cmdUtils

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestOctalModeFlag(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{arg: "0750", want: "0750"},
		{arg: "755", want: "755"},
		{arg: "0999", wantErr: true},
		{arg: "1777", wantErr: true},
		{arg: "rwx", wantErr: true},
	}

	for _, tt := range tests {
		var mode string
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.SetOutput(discard{})
		AddOctalModeFlag(flags, &mode, "dir-mode", "m", "")

		err := flags.Parse([]string{"--dir-mode", tt.arg})
		if tt.wantErr {
			if err == nil {
				t.Errorf("expected error for %q, got mode %q", tt.arg, mode)
			}
			continue
		}
		if err != nil {
			t.Errorf("unexpected error for %q: %v", tt.arg, err)
			continue
		}
		if mode != tt.want {
			t.Errorf("got %q, want %q", mode, tt.want)
		}
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
