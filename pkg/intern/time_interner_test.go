package intern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeInterner_FormatsValue(t *testing.T) {
	c := New()
	ti := NewTimeInterner(c, time.RFC3339)

	when := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	h, err := ti.Get(when)
	require.NoError(t, err)
	assert.Equal(t, "2026-07-29T12:00:00Z", h.View())
}

func TestTimeInterner_SameInstant_SameKey(t *testing.T) {
	c := New()
	ti := NewTimeInterner(c, time.RFC3339)

	when := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	h1, err := ti.Get(when)
	require.NoError(t, err)
	h2, err := ti.Get(when)
	require.NoError(t, err)

	assert.Equal(t, h1.Key(), h2.Key())
}
