package mmu

import (
	"fmt"
	"reflect"

	"github.com/elliott-beach/virtmem/mem/disk"
	"github.com/elliott-beach/virtmem/mem/mem"
	"github.com/elliott-beach/virtmem/mem/vm"
	"github.com/elliott-beach/virtmem/mem/vm/replacement"
)

// A Builder can build MMU components.
type Builder struct {
	numPages     int
	numFrames    int
	pageTable    vm.PageTable
	frames       *mem.FrameStore
	disk         disk.Disk
	victimFinder replacement.VictimFinder
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithNumPages sets the number of virtual pages. It is ignored if a page
// table is given.
func (b Builder) WithNumPages(n int) Builder {
	b.numPages = n
	return b
}

// WithNumFrames sets the number of physical frames. It is ignored if a page
// table is given.
func (b Builder) WithNumFrames(n int) Builder {
	b.numFrames = n
	return b
}

// WithPageTable sets the page table that the MMU maintains.
func (b Builder) WithPageTable(pageTable vm.PageTable) Builder {
	b.pageTable = pageTable
	return b
}

// WithFrameStore sets the physical memory. By default a frame store with one
// frame per page table frame is created.
func (b Builder) WithFrameStore(frames *mem.FrameStore) Builder {
	b.frames = frames
	return b
}

// WithDisk sets the backing store. It must hold at least one block per page.
func (b Builder) WithDisk(d disk.Disk) Builder {
	b.disk = d
	return b
}

// WithVictimFinder sets the replacement policy. FIFO is used if none is
// given.
func (b Builder) WithVictimFinder(victimFinder replacement.VictimFinder) Builder {
	b.victimFinder = victimFinder
	return b
}

// Build returns a newly created MMU component.
func (b Builder) Build(name string) *Comp {
	c := &Comp{name: name}

	b.createPageTable(c)
	b.createFrameStore(c)
	b.attachDisk(c)
	b.attachVictimFinder(c)

	c.addressSpace = vm.NewAddressSpace(c.pageTable, c.frames, c)

	return c
}

func (b Builder) createPageTable(c *Comp) {
	if b.pageTable != nil {
		c.pageTable = b.pageTable
		return
	}

	c.pageTable = vm.NewPageTable(b.numPages, b.numFrames)
}

func (b Builder) createFrameStore(c *Comp) {
	if b.frames == nil {
		c.frames = mem.NewFrameStore(c.pageTable.NumFrames())
		return
	}

	if b.frames.NumFrames() != c.pageTable.NumFrames() {
		panic(fmt.Sprintf("frame store has %d frames, page table has %d",
			b.frames.NumFrames(), c.pageTable.NumFrames()))
	}

	c.frames = b.frames
}

func (b Builder) attachDisk(c *Comp) {
	if b.disk == nil {
		panic("mmu requires a disk")
	}

	if b.disk.NumBlocks() < c.pageTable.NumPages() {
		panic(fmt.Sprintf("disk has %d blocks, cannot back %d pages",
			b.disk.NumBlocks(), c.pageTable.NumPages()))
	}

	c.disk = b.disk
}

func (b Builder) attachVictimFinder(c *Comp) {
	if b.victimFinder == nil {
		c.victimFinder = replacement.NewFIFOVictimFinder()
		return
	}

	c.victimFinder = b.victimFinder
}

func policyName(victimFinder replacement.VictimFinder) string {
	t := reflect.TypeOf(victimFinder)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.Name()
}
