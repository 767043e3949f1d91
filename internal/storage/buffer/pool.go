package buffer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/AnblueWang/bustub/internal/storage/file"
	"github.com/AnblueWang/bustub/internal/storage/page"
	util "github.com/AnblueWang/bustub/internal/utils"
)

// BufferPool caches a fixed number of pages in memory and is the only way
// callers obtain, release and persist pages. One mutex covers the page
// table, the free list and all frame metadata; every operation, including
// the disk I/O it performs, runs under it.
type BufferPool struct {
	mu        sync.Mutex
	frames    []page.Page         // Fixed arena, one slot per frame
	pageToIdx map[util.PageID]int // Map the pageId to frame index
	nextFree  []int               // Free list for allocation
	freeHead  int                 // Head of free list
	replacer  *ClockReplacer
	fm        file.Manager
}

func NewBufferPool(size int, fm file.Manager) *BufferPool {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}

	bp := &BufferPool{
		frames:    make([]page.Page, size),
		pageToIdx: make(map[util.PageID]int, size),
		nextFree:  make([]int, size),
		freeHead:  0,
		replacer:  NewClockReplacer(size),
		fm:        fm,
	}

	for i := 0; i < size; i++ {
		bp.nextFree[i] = i + 1
		bp.frames[i].SetID(util.InvalidPageID)
	}
	bp.nextFree[size-1] = -1

	return bp
}

// FetchPage returns the frame holding pageID, loading it from storage on a
// miss. The page comes back pinned; every call must be paired with one
// UnpinPage. A hit does no I/O; a miss does one read plus at most one
// write-back of a dirty victim. ErrNoFreeFrame means every frame is pinned.
func (this *BufferPool) FetchPage(pageID util.PageID) (*page.Page, error) {
	if !pageID.Valid() {
		return nil, util.ErrInvalidPageID
	}

	this.mu.Lock()
	defer this.mu.Unlock()

	if frameIdx, exists := this.pageToIdx[pageID]; exists {
		p := &this.frames[frameIdx]
		if p.PinCount() == 0 {
			this.replacer.Untrack(frameIdx)
		}
		p.IncPin()
		return p, nil
	}

	frameIdx, err := this.reserveFrame()
	if err != nil {
		return nil, err
	}

	p := &this.frames[frameIdx]
	if err := this.fm.ReadPage(pageID, p.Data()); err != nil {
		p.Reset() // a failed read may have left partial bytes behind
		this.returnFrameToFree(frameIdx)
		return nil, fmt.Errorf("[pool] [FetchPage] read page %d: %w", pageID, err)
	}
	p.SetID(pageID)
	p.SetPinCount(1)
	this.pageToIdx[pageID] = frameIdx

	return p, nil
}

// UnpinPage releases one pin on pageID. The dirty flag is sticky: once any
// holder reports a mutation the page stays dirty until flushed. When the
// pin count reaches zero the frame becomes victim-eligible.
func (this *BufferPool) UnpinPage(pageID util.PageID, isDirty bool) error {
	this.mu.Lock()
	defer this.mu.Unlock()

	frameIdx, exists := this.pageToIdx[pageID]
	if !exists {
		return util.ErrPageNotFound
	}

	p := &this.frames[frameIdx]
	if p.PinCount() <= 0 {
		return util.ErrPageNotPinned
	}

	if isDirty {
		p.SetDirty(true)
	}
	p.DecPin()
	if p.PinCount() == 0 {
		this.replacer.Track(frameIdx)
	}

	return nil
}

// FlushPage writes the resident copy of pageID to storage, dirty or not,
// and clears the dirty flag.
func (this *BufferPool) FlushPage(pageID util.PageID) error {
	if !pageID.Valid() {
		return util.ErrInvalidPageID
	}

	this.mu.Lock()
	defer this.mu.Unlock()

	frameIdx, exists := this.pageToIdx[pageID]
	if !exists {
		return util.ErrPageNotFound
	}

	p := &this.frames[frameIdx]
	if err := this.fm.WritePage(pageID, p.Data()); err != nil {
		return fmt.Errorf("[pool] [FlushPage] write page %d: %w", pageID, err)
	}
	p.SetDirty(false)

	return nil
}

// NewPage allocates a fresh page identifier and installs it, pinned and
// zero-filled, into a frame obtained the same way as a fetch miss. The new
// page is never read from storage.
func (this *BufferPool) NewPage() (*page.Page, error) {
	this.mu.Lock()
	defer this.mu.Unlock()

	frameIdx, err := this.reserveFrame()
	if err != nil {
		return nil, err
	}

	pageID := this.fm.AllocatePage()
	p := &this.frames[frameIdx]
	p.SetID(pageID)
	p.SetPinCount(1)
	this.pageToIdx[pageID] = frameIdx

	return p, nil
}

// DeletePage drops the resident copy of pageID and releases the identifier.
// A non-resident page is a successful no-op; a pinned page cannot be
// deleted. The content is discarded without write-back regardless of the
// dirty flag.
func (this *BufferPool) DeletePage(pageID util.PageID) error {
	if !pageID.Valid() {
		return util.ErrInvalidPageID
	}

	this.mu.Lock()
	defer this.mu.Unlock()

	frameIdx, exists := this.pageToIdx[pageID]
	if !exists {
		return nil
	}

	p := &this.frames[frameIdx]
	if p.PinCount() > 0 {
		return util.ErrPagePinned
	}

	// Zero pins means the replacer tracks this frame; leaving it tracked
	// would let the same frame be handed out twice.
	this.replacer.Untrack(frameIdx)
	delete(this.pageToIdx, pageID)
	p.Reset()
	this.returnFrameToFree(frameIdx)
	this.fm.DeallocatePage(pageID)

	return nil
}

// FlushAll writes every resident page to storage, best effort.
func (this *BufferPool) FlushAll() error {
	this.mu.Lock()
	defer this.mu.Unlock()

	var err error
	for pageID, frameIdx := range this.pageToIdx {
		p := &this.frames[frameIdx]
		if e := this.fm.WritePage(pageID, p.Data()); e != nil {
			err = errors.Join(err, fmt.Errorf("[pool] [FlushAll] write page %d: %w", pageID, e))
			continue
		}
		p.SetDirty(false)
	}
	return err
}

// ===================== HELPER FUNCTION =====================

// reserveFrame obtains a reset frame for a new resident page, preferring
// the free list over an eviction. Caller must hold this.mu. The loop over
// SelectVictim terminates: a sweep that reports no victim has downgraded
// every tracked frame to stale, so the next one must select.
func (this *BufferPool) reserveFrame() (int, error) {
	if frameIdx := this.allocFromFree(); frameIdx != -1 {
		return frameIdx, nil
	}

	for this.replacer.Size() > 0 {
		frameIdx, ok := this.replacer.SelectVictim()
		if !ok {
			continue
		}

		victim := &this.frames[frameIdx]
		if victim.IsDirty() {
			if err := this.fm.WritePage(victim.ID(), victim.Data()); err != nil {
				this.replacer.Track(frameIdx)
				return -1, fmt.Errorf("[pool] [reserveFrame] flush victim page %d: %w", victim.ID(), err)
			}
		}
		delete(this.pageToIdx, victim.ID())
		victim.Reset()

		return frameIdx, nil
	}

	return -1, util.ErrNoFreeFrame
}

func (this *BufferPool) allocFromFree() int {
	if this.freeHead == -1 {
		return -1
	}

	freeIdx := this.freeHead
	this.freeHead = this.nextFree[freeIdx]
	this.nextFree[freeIdx] = -1

	return freeIdx
}

func (this *BufferPool) returnFrameToFree(frameIdx int) {
	this.nextFree[frameIdx] = this.freeHead
	this.freeHead = frameIdx
}
