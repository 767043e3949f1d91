package page

import (
	util "github.com/AnblueWang/bustub/internal/utils"
)

// Page is one buffer pool frame: a fixed-size block of page bytes plus the
// bookkeeping the pool needs (identity, pin count, dirty flag). The frame is
// allocated once at pool construction and only its content is recycled.
type Page struct {
	id       util.PageID
	pinCount int32
	dirty    bool
	data     [util.PageSize]byte
}

func (p *Page) ID() util.PageID {
	return p.id
}

func (p *Page) SetID(id util.PageID) {
	p.id = id
}

func (p *Page) PinCount() int32 {
	return p.pinCount
}

func (p *Page) SetPinCount(count int32) {
	p.pinCount = count
}

func (p *Page) IncPin() {
	p.pinCount++
}

func (p *Page) DecPin() {
	p.pinCount--
}

func (p *Page) IsDirty() bool {
	return p.dirty
}

func (p *Page) SetDirty(dirty bool) {
	p.dirty = dirty
}

// Data exposes the frame's bytes. The slice aliases pool-owned memory and is
// only valid while the caller holds a pin on the page.
func (p *Page) Data() []byte {
	return p.data[:]
}

// Reset zero-fills the frame and clears all metadata, returning it to the
// unassigned state.
func (p *Page) Reset() {
	p.id = util.InvalidPageID
	p.pinCount = 0
	p.dirty = false
	clear(p.data[:])
}
