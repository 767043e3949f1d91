package page

import (
	"testing"

	util "github.com/AnblueWang/bustub/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestPageMetadata(t *testing.T) {
	p := &Page{}
	p.SetID(util.PageID(7))
	p.IncPin()
	p.IncPin()
	p.DecPin()
	p.SetDirty(true)

	assert.Equal(t, util.PageID(7), p.ID(), "id")
	assert.Equal(t, int32(1), p.PinCount(), "pin count")
	assert.True(t, p.IsDirty(), "dirty")
	assert.Equal(t, util.PageSize, len(p.Data()), "data is exactly one page")
}

func TestPageReset(t *testing.T) {
	p := &Page{}
	p.SetID(util.PageID(3))
	p.SetPinCount(2)
	p.SetDirty(true)
	copy(p.Data(), []byte("leftover bytes"))

	p.Reset()

	assert.Equal(t, util.InvalidPageID, p.ID(), "id cleared")
	assert.Equal(t, int32(0), p.PinCount(), "pin count cleared")
	assert.False(t, p.IsDirty(), "dirty cleared")
	for i, b := range p.Data() {
		if b != 0 {
			t.Fatalf("data[%d] = %d, want zero", i, b)
		}
	}
}
