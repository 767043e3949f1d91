package buffer

import (
	"fmt"
	"log"
	"sync"

	util "github.com/AnblueWang/bustub/internal/utils"
)

// Recency state per frame slot. A tracked frame starts fresh and survives
// one sweep of the clock hand before it becomes evictable.
const (
	slotUntracked int8 = -1
	slotStale     int8 = 0
	slotFresh     int8 = 1
)

// ClockReplacer picks eviction victims among the unpinned frames with a
// second-chance scan: the hand moves circularly over all slots, downgrading
// fresh frames and selecting the first stale one it meets. The hand position
// persists across calls, so successive victims rotate round-robin instead of
// always favoring low frame indices.
type ClockReplacer struct {
	mu      sync.Mutex
	slots   []int8
	hand    int
	tracked int
}

func NewClockReplacer(poolSize int) *ClockReplacer {
	if poolSize <= 0 {
		panic(util.ErrInvalidPoolSize)
	}

	slots := make([]int8, poolSize)
	for i := range slots {
		slots[i] = slotUntracked
	}

	return &ClockReplacer{slots: slots}
}

// Track marks a frame victim-eligible with fresh recency. The pool calls it
// when a frame's pin count drops to zero. Tracking an already tracked frame
// is a caller error and leaves state unchanged.
func (cr *ClockReplacer) Track(frameIdx int) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.checkBounds(frameIdx)

	if cr.slots[frameIdx] != slotUntracked {
		log.Printf("[replacer] track frame %d repeatedly", frameIdx)
		return
	}
	cr.slots[frameIdx] = slotFresh
	cr.tracked++
}

// Untrack removes a frame from eligibility. The pool calls it when an
// unpinned frame is pinned again or freed. Untracking a frame that is not
// tracked is a caller error and leaves state unchanged.
func (cr *ClockReplacer) Untrack(frameIdx int) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.checkBounds(frameIdx)

	if cr.slots[frameIdx] == slotUntracked {
		log.Printf("[replacer] untrack frame %d repeatedly", frameIdx)
		return
	}
	cr.slots[frameIdx] = slotUntracked
	cr.tracked--
}

// SelectVictim performs one full sweep of the hand. It returns the first
// stale frame it meets, removed from tracking. Fresh frames met on the way
// are downgraded; a sweep that only downgraded reports no victim and leaves
// the entries stale, so the following call is guaranteed to select one.
// When nothing is tracked it reports no victim immediately.
func (cr *ClockReplacer) SelectVictim() (int, bool) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.tracked == 0 {
		return 0, false
	}

	for range cr.slots {
		cr.hand = (cr.hand + 1) % len(cr.slots)
		switch cr.slots[cr.hand] {
		case slotFresh:
			cr.slots[cr.hand] = slotStale
		case slotStale:
			cr.slots[cr.hand] = slotUntracked
			cr.tracked--
			return cr.hand, true
		}
	}
	return 0, false
}

// Size returns the number of victim-eligible frames.
func (cr *ClockReplacer) Size() int {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.tracked
}

// checkBounds panics on an out-of-range index: frame indices come from the
// pool, never from callers, so this is a pool bug rather than misuse.
func (cr *ClockReplacer) checkBounds(frameIdx int) {
	if frameIdx < 0 || frameIdx >= len(cr.slots) {
		panic(fmt.Sprintf("[replacer] frame index out of bound: %d", frameIdx))
	}
}
