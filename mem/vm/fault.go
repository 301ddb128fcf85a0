package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrAddressOutOfRange is returned when accessing an address beyond the
	// virtual address space.
	ErrAddressOutOfRange = errors.New("address out of range")

	// ErrFaultNotResolved is returned when the fault handler returns without
	// making the faulting access possible.
	ErrFaultNotResolved = errors.New("fault not resolved")
)

// FaultKind tells why an access faulted.
type FaultKind uint8

// The kinds of page faults.
const (
	// PresenceFault means the page is not in physical memory.
	PresenceFault FaultKind = iota

	// ProtectionFault means the page is resident but read-only and a write
	// was requested.
	ProtectionFault
)

func (k FaultKind) String() string {
	switch k {
	case PresenceFault:
		return "presence"
	case ProtectionFault:
		return "protection"
	default:
		return fmt.Sprintf("FaultKind(%d)", uint8(k))
	}
}

// A Fault is the error returned by PageTable.Access when an access cannot
// proceed under the current residency and permission.
type Fault struct {
	Page   PageID
	Access AccessKind
	Kind   FaultKind
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s fault on page %d (%s access)",
		f.Kind, f.Page, f.Access)
}

// A FaultHandler resolves page faults.
type FaultHandler interface {
	HandleFault(page PageID, kind AccessKind) error
}
