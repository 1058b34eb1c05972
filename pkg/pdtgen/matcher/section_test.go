package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSection(t *testing.T) {
	tests := []struct {
		ref      string
		expected string
	}{
		{"14.3.1.2.1", "14.3.1"},
		{"14.3.2.1", "14.3.2"},
		{"Table 14.1.1", "14.1"},
		{"14 . 3 . 4 . 1", "14.3.4"},
		{"14.3.5.3", "14.3.5"},
		{"14.2.1.1", "14.2"},
		{"14.4.2", "14.4"},
		{"16.1.9.1", "16.1"},
		{"16.2.7", "16.2"},
		{"15.1", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveSection(tt.ref))
		})
	}
}

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, ThreeLevel, StrategyFor("14.3.1"))
	assert.Equal(t, ThreeLevel, StrategyFor("14.3.4"))
	assert.Equal(t, TwoLevel, StrategyFor("14.3.2"))
	assert.Equal(t, TwoLevel, StrategyFor("14.3.5"))
	for _, s := range []string{"14.1", "14.2", "14.4", "16.1", "16.2"} {
		assert.Equal(t, SingleLevel, StrategyFor(s), s)
	}
}
