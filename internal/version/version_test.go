package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	Version, Commit = "v1.2.3", "abc1234"
	got := String()
	if !strings.HasPrefix(got, "v1.2.3 (commit=abc1234, built=") {
		t.Errorf("String() = %q", got)
	}
}
