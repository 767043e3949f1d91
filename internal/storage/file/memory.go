package file

import (
	"sync"

	util "github.com/AnblueWang/bustub/internal/utils"
)

var (
	_ Manager = (*FileManager)(nil)
	_ Manager = (*MemManager)(nil)
)

// MemManager is a map-backed page store. It exists for tests: the read and
// write counters let a test assert exactly how much I/O an operation did.
type MemManager struct {
	mu         sync.Mutex
	pages      map[util.PageID][]byte
	nextPageID util.PageID
	freedIDs   []util.PageID
	reads      int
	writes     int
}

func NewMemManager() *MemManager {
	return &MemManager{
		pages: make(map[util.PageID][]byte),
	}
}

func (mm *MemManager) ReadPage(pageID util.PageID, buf []byte) error {
	if !pageID.Valid() {
		return util.ErrInvalidPageID
	}
	if len(buf) != util.PageSize {
		return util.ErrBufferSize
	}

	mm.mu.Lock()
	defer mm.mu.Unlock()

	mm.reads++
	stored, ok := mm.pages[pageID]
	if !ok {
		// Allocated but never written pages read back as zeroes.
		clear(buf)
		return nil
	}
	copy(buf, stored)
	return nil
}

func (mm *MemManager) WritePage(pageID util.PageID, buf []byte) error {
	if !pageID.Valid() {
		return util.ErrInvalidPageID
	}
	if len(buf) != util.PageSize {
		return util.ErrBufferSize
	}

	mm.mu.Lock()
	defer mm.mu.Unlock()

	mm.writes++
	stored := make([]byte, util.PageSize)
	copy(stored, buf)
	mm.pages[pageID] = stored
	return nil
}

func (mm *MemManager) AllocatePage() util.PageID {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	if n := len(mm.freedIDs); n > 0 {
		id := mm.freedIDs[n-1]
		mm.freedIDs = mm.freedIDs[:n-1]
		return id
	}

	id := mm.nextPageID
	mm.nextPageID++
	return id
}

func (mm *MemManager) DeallocatePage(pageID util.PageID) {
	if !pageID.Valid() {
		return
	}

	mm.mu.Lock()
	defer mm.mu.Unlock()
	delete(mm.pages, pageID)
	mm.freedIDs = append(mm.freedIDs, pageID)
}

// Reads reports how many page reads have been served.
func (mm *MemManager) Reads() int {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return mm.reads
}

// Writes reports how many page writes have been served.
func (mm *MemManager) Writes() int {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return mm.writes
}
