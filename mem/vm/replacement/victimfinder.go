// Package replacement provides the page replacement policies that decide
// which resident page to evict when physical memory is full.
package replacement

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/elliott-beach/virtmem/mem/vm"
)

// ErrUnknownPolicy is returned when a policy name is not recognized.
var ErrUnknownPolicy = errors.New("unknown paging algorithm")

// A VictimFinder decides which page should be evicted.
//
// FindVictim is only called when no frame is free, so at least one page is
// resident. It must return a resident page.
type VictimFinder interface {
	FindVictim(table vm.PageTable, faulting vm.PageID) vm.PageID
}

// A LoadObserver is a VictimFinder that needs to know when a page has been
// loaded into a frame.
type LoadObserver interface {
	PageLoaded(page vm.PageID, frame vm.FrameID)
}

// Policy names accepted by New.
const (
	RandomPolicy   = "rand"
	FIFOPolicy     = "fifo"
	DistancePolicy = "custom"
)

// Names returns the policy names accepted by New.
func Names() []string {
	return []string{RandomPolicy, FIFOPolicy, DistancePolicy}
}

// New creates the policy with the given name. rng is used by the random
// policy only.
func New(name string, rng *rand.Rand) (VictimFinder, error) {
	switch name {
	case RandomPolicy:
		return NewRandomVictimFinder(rng), nil
	case FIFOPolicy:
		return NewFIFOVictimFinder(), nil
	case DistancePolicy:
		return NewDistanceVictimFinder(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

func residentPagesMustExist(pages []vm.PageID) {
	if len(pages) == 0 {
		panic("victim requested while no page is resident")
	}
}
