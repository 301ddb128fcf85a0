// Package mmu provides the fault resolution engine of the simulated machine.
package mmu

import (
	"fmt"
	"sync"

	"github.com/elliott-beach/virtmem/mem/disk"
	"github.com/elliott-beach/virtmem/mem/mem"
	"github.com/elliott-beach/virtmem/mem/vm"
	"github.com/elliott-beach/virtmem/mem/vm/replacement"
	"github.com/elliott-beach/virtmem/sim"
)

// HookPosFault marks the end of every fault resolution. The hook item is a
// FaultRecord.
var HookPosFault = &sim.HookPos{Name: "Fault"}

// HookPosEvict marks every eviction. The hook item is an EvictionRecord.
var HookPosEvict = &sim.HookPos{Name: "Evict"}

// Stats counts the work done by the MMU.
type Stats struct {
	Faults    uint64
	Reads     uint64
	Writes    uint64
	Evictions uint64
	Upgrades  uint64
}

// Comp is the MMU. It resolves page faults by granting write permission,
// loading pages into free frames, or evicting a victim chosen by the
// replacement policy.
type Comp struct {
	sim.HookableBase

	name         string
	pageTable    vm.PageTable
	frames       *mem.FrameStore
	disk         disk.Disk
	victimFinder replacement.VictimFinder
	addressSpace *vm.AddressSpace

	statsLock sync.Mutex
	stats     Stats
}

// Name returns the name of the MMU.
func (c *Comp) Name() string {
	return c.name
}

// PageTable returns the page table that the MMU maintains.
func (c *Comp) PageTable() vm.PageTable {
	return c.pageTable
}

// AddressSpace returns the virtual memory whose faults the MMU resolves.
func (c *Comp) AddressSpace() *vm.AddressSpace {
	return c.addressSpace
}

// Stats returns a copy of the counters.
func (c *Comp) Stats() Stats {
	c.statsLock.Lock()
	defer c.statsLock.Unlock()

	return c.stats
}

func (c *Comp) count(f func(s *Stats)) {
	c.statsLock.Lock()
	f(&c.stats)
	c.statsLock.Unlock()
}

// HandleFault resolves a fault on page for an access of the given kind.
func (c *Comp) HandleFault(page vm.PageID, kind vm.AccessKind) error {
	var seq uint64

	c.count(func(s *Stats) {
		s.Faults++
		seq = s.Faults
	})

	record := FaultRecord{
		Seq:    seq,
		Page:   page,
		Access: kind,
		Kind:   vm.PresenceFault,
		Victim: noVictim,
	}
	if c.NumHooks() > 0 {
		record.ID = sim.GetIDGenerator().Generate()
	}

	entry := c.pageTable.Find(page)
	if entry.Resident {
		c.resolveProtectionFault(entry, kind, &record)
		c.invokeHook(HookPosFault, record)

		return nil
	}

	err := c.resolvePresenceFault(page, &record)
	if err != nil {
		return err
	}

	c.invokeHook(HookPosFault, record)

	return nil
}

func (c *Comp) resolveProtectionFault(
	entry vm.Page,
	kind vm.AccessKind,
	record *FaultRecord,
) {
	record.Kind = vm.ProtectionFault
	record.Frame = entry.Frame
	record.Resolution = ResolvedNothing

	if entry.Perm.Allows(kind) {
		return
	}

	c.pageTable.SetEntry(entry.ID, entry.Frame, vm.PermReadWrite)
	c.count(func(s *Stats) { s.Upgrades++ })
	record.Resolution = ResolvedUpgrade
}

func (c *Comp) resolvePresenceFault(page vm.PageID, record *FaultRecord) error {
	record.Resolution = ResolvedLoad

	frame, found := c.pageTable.FreeFrame()
	if !found {
		victim, err := c.evict(page, record.ID)
		if err != nil {
			return err
		}

		frame = victim.Frame
		record.Victim = victim.ID
		record.VictimDirty = victim.Dirty()
		record.Resolution = ResolvedEvictAndLoad
	}

	record.Frame = frame

	return c.load(page, frame)
}

func (c *Comp) evict(faulting vm.PageID, faultID string) (vm.Page, error) {
	victimID := c.victimFinder.FindVictim(c.pageTable, faulting)

	victim := c.pageTable.Find(victimID)
	if !victim.Resident {
		panic(fmt.Sprintf("victim page %d is not resident", victimID))
	}

	if victim.Dirty() {
		err := c.disk.WriteBlock(int(victim.ID), c.frames.Frame(int(victim.Frame)))
		if err != nil {
			return vm.Page{}, fmt.Errorf("write back page %d: %w", victim.ID, err)
		}

		c.count(func(s *Stats) { s.Writes++ })
	}

	c.pageTable.Clear(victim.ID)
	c.count(func(s *Stats) { s.Evictions++ })

	c.invokeHook(HookPosEvict, EvictionRecord{
		FaultID: faultID,
		Page:    victim.ID,
		Frame:   victim.Frame,
		Dirty:   victim.Dirty(),
		ForPage: faulting,
	})

	return victim, nil
}

func (c *Comp) load(page vm.PageID, frame vm.FrameID) error {
	err := c.disk.ReadBlock(int(page), c.frames.Frame(int(frame)))
	if err != nil {
		return fmt.Errorf("load page %d: %w", page, err)
	}

	c.count(func(s *Stats) { s.Reads++ })
	c.pageTable.SetEntry(page, frame, vm.PermRead)

	if observer, ok := c.victimFinder.(replacement.LoadObserver); ok {
		observer.PageLoaded(page, frame)
	}

	return nil
}

func (c *Comp) invokeHook(pos *sim.HookPos, item interface{}) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    pos,
		Item:   item,
	})
}
