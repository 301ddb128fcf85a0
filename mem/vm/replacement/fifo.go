package replacement

import (
	"fmt"

	"github.com/elliott-beach/virtmem/mem/vm"
)

// FIFOVictimFinder evicts pages in the order they were loaded. Frames are
// filled in ascending order and then reused round robin, so the page to evict
// is always the one in frame loaded mod NumFrames.
type FIFOVictimFinder struct {
	loaded uint64
}

// NewFIFOVictimFinder returns a FIFOVictimFinder that has not seen any load.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return &FIFOVictimFinder{}
}

// NumLoaded returns the number of pages loaded so far.
func (e *FIFOVictimFinder) NumLoaded() uint64 {
	return e.loaded
}

// PageLoaded advances the load counter. Write upgrades are not loads and do
// not advance it.
func (e *FIFOVictimFinder) PageLoaded(_ vm.PageID, _ vm.FrameID) {
	e.loaded++
}

// FindVictim returns the page held by the next frame in the rotation.
func (e *FIFOVictimFinder) FindVictim(
	table vm.PageTable,
	_ vm.PageID,
) vm.PageID {
	frame := vm.FrameID(e.loaded % uint64(table.NumFrames()))

	page, ok := table.PageInFrame(frame)
	if !ok {
		panic(fmt.Sprintf("fifo frame %d is not occupied", frame))
	}

	return page
}
