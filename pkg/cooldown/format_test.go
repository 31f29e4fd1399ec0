package cooldown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0h 0m"},
		{300, "0h 5m"},
		{3599, "0h 59m"},
		{3600, "1h 0m"},
		{86399, "23h 59m"},
		{-10, "0h 0m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.seconds), "FormatClock(%d)", tt.seconds)
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m 0s"},
		{1799, "29m 59s"},
		{3602, "1h 2s"},
		{3725, "1h 2m 5s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCompact(tt.seconds), "FormatCompact(%d)", tt.seconds)
	}
}
