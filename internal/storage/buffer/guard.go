package buffer

import (
	"github.com/AnblueWang/bustub/internal/storage/page"
	util "github.com/AnblueWang/bustub/internal/utils"
)

// PageGuard ties a pin to a scope: deferring Release guarantees the matching
// unpin runs on every exit path. The wrapped page is only valid until
// Release.
type PageGuard struct {
	bp       *BufferPool
	page     *page.Page
	pageID   util.PageID
	dirty    bool
	released bool
}

// FetchGuarded fetches a page and wraps the pin in a guard.
func (this *BufferPool) FetchGuarded(pageID util.PageID) (*PageGuard, error) {
	p, err := this.FetchPage(pageID)
	if err != nil {
		return nil, err
	}
	return &PageGuard{bp: this, page: p, pageID: pageID}, nil
}

// NewGuarded allocates a new page and wraps the pin in a guard.
func (this *BufferPool) NewGuarded() (*PageGuard, error) {
	p, err := this.NewPage()
	if err != nil {
		return nil, err
	}
	return &PageGuard{bp: this, page: p, pageID: p.ID()}, nil
}

func (g *PageGuard) Page() *page.Page {
	return g.page
}

func (g *PageGuard) PageID() util.PageID {
	return g.pageID
}

// MarkDirty records that the holder mutated the page; the unpin performed
// by Release will carry it.
func (g *PageGuard) MarkDirty() {
	g.dirty = true
}

// Release unpins the page. Safe to call more than once; only the first call
// unpins.
func (g *PageGuard) Release() error {
	if g.released {
		return nil
	}
	g.released = true
	g.page = nil
	return g.bp.UnpinPage(g.pageID, g.dirty)
}
