package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20:00", "0 0 20 * * *"},
		{"09:30", "0 30 9 * * *"},
		{"00:00", "0 0 0 * * *"},
		{"23:59", "0 59 23 * * *"},
	}
	for _, tt := range tests {
		spec, err := buildDailySpec(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, spec, tt.in)
	}
}

func TestBuildDailySpecRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "20", "20:00:00", "24:00", "12:60", "ab:cd", "-1:30"} {
		_, err := buildDailySpec(in)
		assert.Error(t, err, in)
	}
}
