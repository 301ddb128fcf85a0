package vm

import (
	"errors"
	"fmt"

	"github.com/elliott-beach/virtmem/mem/mem"
)

// A correct handler needs one fault to load a page and a second one to grant
// write permission.
const maxFaultsPerAccess = 2

// An AddressSpace is the byte-addressable virtual memory seen by a workload.
// Every access is checked against the page table, and faults are passed to
// the fault handler before the access is retried.
type AddressSpace struct {
	pageTable PageTable
	frames    *mem.FrameStore
	handler   FaultHandler
}

// NewAddressSpace creates an address space of pageTable.NumPages() pages
// backed by the given frames.
func NewAddressSpace(
	pageTable PageTable,
	frames *mem.FrameStore,
	handler FaultHandler,
) *AddressSpace {
	if pageTable.NumFrames() != frames.NumFrames() {
		panic(fmt.Sprintf("page table has %d frames but frame store has %d",
			pageTable.NumFrames(), frames.NumFrames()))
	}

	return &AddressSpace{
		pageTable: pageTable,
		frames:    frames,
		handler:   handler,
	}
}

// Len returns the number of bytes in the address space.
func (s *AddressSpace) Len() int {
	return s.pageTable.NumPages() * mem.PageSize
}

// Load reads the byte at addr.
func (s *AddressSpace) Load(addr int) (byte, error) {
	frame, offset, err := s.translate(addr, AccessRead)
	if err != nil {
		return 0, err
	}

	return s.frames.Read(int(frame), offset), nil
}

// Store writes the byte at addr.
func (s *AddressSpace) Store(addr int, value byte) error {
	frame, offset, err := s.translate(addr, AccessWrite)
	if err != nil {
		return err
	}

	s.frames.Write(int(frame), offset, value)

	return nil
}

func (s *AddressSpace) translate(
	addr int,
	kind AccessKind,
) (FrameID, uint64, error) {
	if addr < 0 || addr >= s.Len() {
		return 0, 0, fmt.Errorf("%w: %d", ErrAddressOutOfRange, addr)
	}

	page := PageID(addr / mem.PageSize)
	offset := uint64(addr % mem.PageSize)

	for faults := 0; ; faults++ {
		err := s.pageTable.Access(page, kind)
		if err == nil {
			break
		}

		var fault *Fault
		if !errors.As(err, &fault) {
			return 0, 0, err
		}

		if faults == maxFaultsPerAccess {
			return 0, 0, fmt.Errorf("%w: %v", ErrFaultNotResolved, fault)
		}

		err = s.handler.HandleFault(fault.Page, fault.Access)
		if err != nil {
			return 0, 0, fmt.Errorf("handle %v: %w", fault, err)
		}
	}

	frame, _ := s.pageTable.FrameOf(page)

	return frame, offset, nil
}
