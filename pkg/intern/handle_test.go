package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_ViewOnCollectedKey_Panics(t *testing.T) {
	c := New()
	h, err := c.Intern([]byte("will-be-collected"))
	require.NoError(t, err)

	h.Close()
	require.NoError(t, c.CollectGarbage())

	assert.Panics(t, func() {
		h.View()
	})
}

func TestPackageLevel_DefaultCoordinator(t *testing.T) {
	h, err := InternString("package-level-default")
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, "package-level-default", h.View())
	assert.Same(t, Default(), h.coord)
}
