package ssh_test

import (
	"testing"

	sshUtils "github.com/linkfarm/linkfarm/internal/ssh"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    sshUtils.Target
		wantErr bool
	}{
		{
			name:  "host only",
			input: "example.com",
			want:  sshUtils.Target{Host: "example.com"},
		},
		{
			name:  "host and port",
			input: "example.com:22",
			want:  sshUtils.Target{Host: "example.com", Port: 22},
		},
		{
			name:  "user host and port",
			input: "alice@example.com:2222",
			want:  sshUtils.Target{User: "alice", Host: "example.com", Port: 2222},
		},
		{
			name:  "ssh scheme",
			input: "ssh://bob@build-box",
			want:  sshUtils.Target{User: "bob", Host: "build-box"},
		},
		{
			name:  "ipv4 and port",
			input: "192.168.1.10:22",
			want:  sshUtils.Target{Host: "192.168.1.10", Port: 22},
		},
		{
			name:  "bracketed ipv6 without port",
			input: "[2001:db8::1]",
			want:  sshUtils.Target{Host: "2001:db8::1"},
		},
		{
			name:  "bracketed ipv6 with port",
			input: "carol@[2001:db8::1]:2200",
			want:  sshUtils.Target{User: "carol", Host: "2001:db8::1", Port: 2200},
		},
		{
			name:  "bare ipv6",
			input: "2001:db8::1",
			want:  sshUtils.Target{Host: "2001:db8::1"},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "user without host", input: "alice@", wantErr: true},
		{name: "port zero", input: "example.com:0", wantErr: true},
		{name: "port out of range", input: "example.com:70000", wantErr: true},
		{name: "unmatched bracket", input: "[2001:db8::1", wantErr: true},
		{name: "garbage after bracket", input: "[::1]x", wantErr: true},
		{name: "empty brackets", input: "[]:22", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sshUtils.ParseTarget(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestTargetAddress(t *testing.T) {
	tests := []struct {
		target sshUtils.Target
		want   string
	}{
		{target: sshUtils.Target{Host: "example.com"}, want: "example.com:22"},
		{target: sshUtils.Target{Host: "2001:db8::1", Port: 2200}, want: "[2001:db8::1]:2200"},
		{target: sshUtils.Target{User: "alice", Host: "h", Port: 1}, want: "alice@h:1"},
	}

	for _, tt := range tests {
		if got := tt.target.String(); got != tt.want {
			t.Fatalf("expected %v, got %v", tt.want, got)
		}
	}
}
