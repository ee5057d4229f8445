package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, s := range []string{"2024-05-01T12:00:00Z", "2024-05-01T12:00:00+0000", "1714564800", "2024-05-01T14:00:00+02:00"} {
		got := ParseTimestamp(s)
		require.NotNil(t, got, s)
		assert.True(t, want.Equal(*got), s)
	}
	assert.Nil(t, ParseTimestamp(""))
	assert.Nil(t, ParseTimestamp("yesterday"))
	assert.Nil(t, ParseTimestamp("0"))
}
