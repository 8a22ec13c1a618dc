package apply

import (
	"testing"

	"github.com/linkfarm/linkfarm/internal/manifest"
)

func TestHasRelativeRoot(t *testing.T) {
	tests := []struct {
		root string
		want bool
	}{
		{root: "", want: false},
		{root: "/srv/out", want: false},
		{root: "build/out", want: true},
		{root: "./out", want: true},
	}

	for _, tt := range tests {
		m, err := manifest.Parse([]byte("root = \""+tt.root+"\"\n"), "/work")
		if err != nil {
			t.Fatalf("failed to parse manifest: %v", err)
		}
		if got := hasRelativeRoot(m); got != tt.want {
			t.Errorf("root %q: expected %v, got %v", tt.root, tt.want, got)
		}
	}
}
