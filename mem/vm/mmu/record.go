package mmu

import (
	"fmt"

	"github.com/elliott-beach/virtmem/mem/vm"
)

const noVictim vm.PageID = -1

// Resolution tells how a fault was resolved.
type Resolution uint8

// The ways a fault can be resolved.
const (
	// ResolvedNothing means the page already allowed the access.
	ResolvedNothing Resolution = iota
	ResolvedUpgrade
	ResolvedLoad
	ResolvedEvictAndLoad
)

func (r Resolution) String() string {
	switch r {
	case ResolvedNothing:
		return "nothing"
	case ResolvedUpgrade:
		return "upgrade"
	case ResolvedLoad:
		return "load"
	case ResolvedEvictAndLoad:
		return "evict-load"
	default:
		return fmt.Sprintf("Resolution(%d)", uint8(r))
	}
}

// A FaultRecord describes a resolved fault.
type FaultRecord struct {
	ID          string
	Seq         uint64
	Page        vm.PageID
	Access      vm.AccessKind
	Kind        vm.FaultKind
	Resolution  Resolution
	Frame       vm.FrameID
	Victim      vm.PageID // -1 if nothing was evicted.
	VictimDirty bool
}

// HasVictim tells if resolving the fault evicted a page.
func (r FaultRecord) HasVictim() bool {
	return r.Victim != noVictim
}

// An EvictionRecord describes a page being evicted.
type EvictionRecord struct {
	FaultID string
	Page    vm.PageID
	Frame   vm.FrameID
	Dirty   bool
	ForPage vm.PageID
}
