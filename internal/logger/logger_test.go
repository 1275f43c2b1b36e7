package logger

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		isNil bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"verbose", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLevel(tt.input)
			if (got == nil) != tt.isNil {
				t.Errorf("parseLevel(%q) = %v, want nil=%v", tt.input, got, tt.isNil)
			}
		})
	}
}

func TestNopLogger(t *testing.T) {
	log := Nop().With(String("component", "test"))
	log.Info("discarded", Int("n", 1), Bool("ok", true))
	if err := log.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}
