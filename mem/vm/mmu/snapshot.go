package mmu

import "github.com/elliott-beach/virtmem/mem/vm"

// A Snapshot is a copy of the MMU state for inspection.
type Snapshot struct {
	Name      string
	Policy    string
	NumPages  int
	NumFrames int
	Stats     Stats
	Resident  []vm.Page
}

// Snapshot returns a copy of the MMU state.
func (c *Comp) Snapshot() any {
	return &Snapshot{
		Name:      c.name,
		Policy:    policyName(c.victimFinder),
		NumPages:  c.pageTable.NumPages(),
		NumFrames: c.pageTable.NumFrames(),
		Stats:     c.Stats(),
		Resident:  c.pageTable.ResidentEntries(),
	}
}
