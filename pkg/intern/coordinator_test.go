package intern

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_Intern_HitReturnsSameKey(t *testing.T) {
	c := New()

	h1, err := c.Intern([]byte("hello"))
	require.NoError(t, err)

	h2, err := c.Intern([]byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, h1.Key(), h2.Key())
	assert.Equal(t, "hello", h1.View())
	assert.Equal(t, "hello", h2.View())

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Interned)
	assert.Equal(t, uint64(1), stats.Returned)
	assert.Equal(t, 1, stats.Live)
}

func TestCoordinator_InternString_MatchesIntern(t *testing.T) {
	c := New()

	h1, err := c.Intern([]byte("same"))
	require.NoError(t, err)

	h2, err := c.InternString("same")
	require.NoError(t, err)

	assert.Equal(t, h1.Key(), h2.Key())
}

func TestCoordinator_EmptySequence(t *testing.T) {
	c := New()

	h, err := c.Intern(nil)
	require.NoError(t, err)
	assert.Equal(t, "", h.View())

	h2, err := c.Intern([]byte{})
	require.NoError(t, err)
	assert.Equal(t, h.Key(), h2.Key())
}

func TestCoordinator_LargeSequence(t *testing.T) {
	c := New()

	big := make([]byte, 2*1024*1024)
	for i := range big {
		big[i] = byte(i)
	}

	h, err := c.Intern(big)
	require.NoError(t, err)
	assert.Equal(t, len(big), len(h.View()))

	h2, err := c.Intern(big)
	require.NoError(t, err)
	assert.Equal(t, h.Key(), h2.Key())
}

func TestCoordinator_CollectGarbage_ReclaimsAfterAllHandlesClosed(t *testing.T) {
	c := New()

	h, err := c.Intern([]byte("gone-soon"))
	require.NoError(t, err)
	h.Close()

	require.NoError(t, c.CollectGarbage())

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Collected)
	assert.Equal(t, 0, stats.Live)

	// Interning the same bytes again after collection must mint a new
	// entry rather than resurrect the collected one.
	h2, err := c.Intern([]byte("gone-soon"))
	require.NoError(t, err)
	assert.Equal(t, "gone-soon", h2.View())
}

func TestCoordinator_CloneKeepsEntryAliveUntilBothClose(t *testing.T) {
	c := New()

	h, err := c.Intern([]byte("shared"))
	require.NoError(t, err)
	clone := h.Clone()

	h.Close()
	require.NoError(t, c.CollectGarbage())

	// clone is still live, so the entry must still be there.
	assert.Equal(t, "shared", clone.View())

	clone.Close()
	require.NoError(t, c.CollectGarbage())
	assert.Equal(t, 0, c.Stats().Live)
}

func TestCoordinator_ReaderLocal_HitNeverTouchesWriter(t *testing.T) {
	c := New()
	r := c.NewReaderLocal()

	h1, err := r.Intern([]byte("rl"))
	require.NoError(t, err)
	h2, err := r.Intern([]byte("rl"))
	require.NoError(t, err)

	assert.Equal(t, h1.Key(), h2.Key())
	assert.Equal(t, uint64(1), c.Stats().Interned)
	assert.Equal(t, uint64(1), c.Stats().Returned)
}

// TestCoordinator_ManyGoroutines_Race interns and releases a small
// alphabet of sequences from many concurrent goroutines, each with its
// own ReaderLocal, and checks every Handle still views correctly. Run
// with -race.
func TestCoordinator_ManyGoroutines_Race(t *testing.T) {
	c := New()

	alphabet := make([]string, 1000)
	for i := range alphabet {
		alphabet[i] = string(rune('a'+i%26)) + string(rune('A'+(i/26)%26))
	}

	barrier := sync.WaitGroup{}
	barrier.Add(1)

	complete := sync.WaitGroup{}
	for g := 0; g < 8; g++ {
		complete.Add(1)
		go func() {
			defer complete.Done()
			barrier.Wait()

			reader := c.NewReaderLocal()
			handles := make([]Handle, 0, len(alphabet))
			for _, s := range alphabet {
				h, err := reader.InternString(s)
				assert.NoError(t, err)
				handles = append(handles, h)
			}
			for i, h := range handles {
				assert.Equal(t, alphabet[i], h.View())
			}
			for _, h := range handles {
				h.Close()
			}
		}()
	}

	barrier.Done()
	complete.Wait()

	require.NoError(t, c.CollectGarbage())
	assert.Equal(t, 0, c.Stats().Live)
}
