package file

import (
	"testing"

	util "github.com/AnblueWang/bustub/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestFileManagerReadWrite(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		path, cleanup := util.CreateTempFile(t)
		defer cleanup()
		fm, err := NewFileManager(path, false)
		assert.NoError(t, err, "create FileManager")
		defer fm.Close()

		id := fm.AllocatePage()
		out := make([]byte, util.PageSize)
		copy(out, []byte("durable bytes"))
		assert.NoError(t, fm.WritePage(id, out), "write page")

		in := make([]byte, util.PageSize)
		assert.NoError(t, fm.ReadPage(id, in), "read page")
		assert.Equal(t, out, in, "content round trip")
	})

	t.Run("UnwrittenPageReadsZero", func(t *testing.T) {
		path, cleanup := util.CreateTempFile(t)
		defer cleanup()
		fm, err := NewFileManager(path, false)
		assert.NoError(t, err, "create FileManager")
		defer fm.Close()

		id := fm.AllocatePage()
		buf := make([]byte, util.PageSize)
		buf[0] = 0xff // stale caller bytes must be overwritten
		assert.NoError(t, fm.ReadPage(id, buf), "read unwritten page")
		assert.Equal(t, make([]byte, util.PageSize), buf, "all zeroes")
	})

	t.Run("InvalidArguments", func(t *testing.T) {
		path, cleanup := util.CreateTempFile(t)
		defer cleanup()
		fm, err := NewFileManager(path, false)
		assert.NoError(t, err, "create FileManager")
		defer fm.Close()

		buf := make([]byte, util.PageSize)
		assert.ErrorIs(t, fm.ReadPage(util.InvalidPageID, buf), util.ErrInvalidPageID, "read invalid id")
		assert.ErrorIs(t, fm.WritePage(util.InvalidPageID, buf), util.ErrInvalidPageID, "write invalid id")
		assert.ErrorIs(t, fm.ReadPage(0, buf[:10]), util.ErrBufferSize, "short read buffer")
		assert.ErrorIs(t, fm.WritePage(0, buf[:10]), util.ErrBufferSize, "short write buffer")
	})
}

func TestFileManagerAllocate(t *testing.T) {
	t.Run("Sequential", func(t *testing.T) {
		path, cleanup := util.CreateTempFile(t)
		defer cleanup()
		fm, err := NewFileManager(path, false)
		assert.NoError(t, err, "create FileManager")
		defer fm.Close()

		for i := util.PageID(0); i < 4; i++ {
			assert.Equal(t, i, fm.AllocatePage(), "allocation %d", i)
		}
	})

	t.Run("DeallocatedIDReused", func(t *testing.T) {
		path, cleanup := util.CreateTempFile(t)
		defer cleanup()
		fm, err := NewFileManager(path, false)
		assert.NoError(t, err, "create FileManager")
		defer fm.Close()

		a := fm.AllocatePage()
		b := fm.AllocatePage()
		fm.DeallocatePage(a)
		fm.DeallocatePage(b)

		assert.Equal(t, b, fm.AllocatePage(), "most recently freed id first")
		assert.Equal(t, a, fm.AllocatePage(), "then the older one")
		assert.Equal(t, util.PageID(2), fm.AllocatePage(), "high-water mark resumes")
	})

	t.Run("HighWaterMarkSurvivesReopen", func(t *testing.T) {
		path, cleanup := util.CreateTempFile(t)
		defer cleanup()
		fm, err := NewFileManager(path, false)
		assert.NoError(t, err, "create FileManager")

		id := fm.AllocatePage()
		buf := make([]byte, util.PageSize)
		copy(buf, []byte("persisted"))
		assert.NoError(t, fm.WritePage(id, buf), "write page")
		assert.NoError(t, fm.Close(), "close")

		reopened, err := NewFileManager(path, false)
		assert.NoError(t, err, "reopen")
		defer reopened.Close()

		in := make([]byte, util.PageSize)
		assert.NoError(t, reopened.ReadPage(id, in), "read after reopen")
		assert.Equal(t, buf, in, "content persisted")
		assert.Equal(t, id+1, reopened.AllocatePage(), "allocation resumes past written pages")
	})
}

func TestFileManagerClose(t *testing.T) {
	path, cleanup := util.CreateTempFile(t)
	defer cleanup()
	fm, err := NewFileManager(path, true)
	assert.NoError(t, err, "create FileManager with sync writes")

	buf := make([]byte, util.PageSize)
	assert.NoError(t, fm.WritePage(fm.AllocatePage(), buf), "synced write")

	assert.NoError(t, fm.Close(), "close")
	assert.NoError(t, (*FileManager)(nil).Close(), "nil close is idempotent")
}
