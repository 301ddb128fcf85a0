// Package vm provides the page table and the virtual address space of the
// simulated machine.
package vm

import "fmt"

// PageID identifies a virtual page. Pages are numbered from 0.
type PageID int

// FrameID identifies a physical frame. Frames are numbered from 0.
type FrameID int

// Permission is the access right that a page table entry grants.
type Permission uint8

// The permissions a page can hold. A page that is not resident always has
// PermNone.
const (
	PermNone Permission = iota
	PermRead
	PermReadWrite
)

func (p Permission) String() string {
	switch p {
	case PermNone:
		return "none"
	case PermRead:
		return "read"
	case PermReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("Permission(%d)", uint8(p))
	}
}

// Allows tells if the permission is sufficient for the access kind.
func (p Permission) Allows(kind AccessKind) bool {
	switch kind {
	case AccessRead:
		return p == PermRead || p == PermReadWrite
	case AccessWrite:
		return p == PermReadWrite
	default:
		return false
	}
}

// AccessKind tells if a memory access reads or writes.
type AccessKind uint8

// The kinds of memory accesses.
const (
	AccessRead AccessKind = iota
	AccessWrite
)

func (k AccessKind) String() string {
	switch k {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	default:
		return fmt.Sprintf("AccessKind(%d)", uint8(k))
	}
}

// A Page is an entry in the page table.
type Page struct {
	ID       PageID
	Resident bool
	Frame    FrameID // Only meaningful when Resident is true.
	Perm     Permission
}

// Dirty tells if the content of the page may differ from its copy on disk.
func (p Page) Dirty() bool {
	return p.Resident && p.Perm == PermReadWrite
}
