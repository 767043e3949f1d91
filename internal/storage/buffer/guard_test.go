package buffer

import (
	"testing"

	"github.com/AnblueWang/bustub/internal/storage/file"
	"github.com/stretchr/testify/assert"
)

func TestPageGuard(t *testing.T) {
	t.Run("ReleaseUnpinsOnce", func(t *testing.T) {
		bp := NewBufferPool(2, file.NewMemManager())

		g, err := bp.NewGuarded()
		assert.NoError(t, err, "new guarded page")
		assert.Equal(t, int32(1), g.Page().PinCount(), "guard holds one pin")

		assert.NoError(t, g.Release(), "release")
		assert.NoError(t, g.Release(), "double release is a no-op")
		assert.Equal(t, 1, bp.replacer.Size(), "exactly one unpin reached the pool")
	})

	t.Run("MarkDirtyCarriesOnRelease", func(t *testing.T) {
		mm := file.NewMemManager()
		bp := NewBufferPool(1, mm)

		g, err := bp.NewGuarded()
		assert.NoError(t, err, "new guarded page")
		id := g.PageID()
		copy(g.Page().Data(), []byte("guarded write"))
		g.MarkDirty()
		assert.NoError(t, g.Release(), "release")

		// Turning the frame over must write the guarded mutation back.
		g2, err := bp.NewGuarded()
		assert.NoError(t, err, "evicting allocation")
		assert.NoError(t, g2.Release(), "release second guard")
		assert.Equal(t, 1, mm.Writes(), "dirty page written back")

		g3, err := bp.FetchGuarded(id)
		assert.NoError(t, err, "refetch")
		defer g3.Release()
		assert.Equal(t, []byte("guarded write"), g3.Page().Data()[:13], "mutation survived eviction")
	})

	t.Run("FetchGuardedPropagatesErrors", func(t *testing.T) {
		bp := NewBufferPool(1, file.NewMemManager())

		p, err := bp.NewPage()
		assert.NoError(t, err, "pin the only frame")

		_, err = bp.FetchGuarded(p.ID() + 1)
		assert.Error(t, err, "no frame available for a miss")
	})
}
