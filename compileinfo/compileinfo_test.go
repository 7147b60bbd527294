package compileinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	c := CompileInfo{Path: "github.com/carbocation/gwasplot/cmd/manhattan", GoVersion: "go1.18", Commit: "abc123", Modified: true}
	if s := c.String(); !strings.Contains(s, "abc123") || !strings.Contains(s, "modified") {
		t.Errorf("Unexpected description: %s", s)
	}

	if s := (CompileInfo{GoVersion: "go1.18"}).String(); !strings.Contains(s, "without version control") {
		t.Errorf("Unexpected description: %s", s)
	}
}
