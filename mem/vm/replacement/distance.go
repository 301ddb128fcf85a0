package replacement

import "github.com/elliott-beach/virtmem/mem/vm"

// DistanceVictimFinder evicts the resident page that is farthest behind the
// faulting page, counting modulo the number of pages. Ties go to the lowest
// page.
//
// If no resident page has a positive distance the victim is page 0, whether
// or not page 0 is resident. This cannot happen on a presence fault, because
// the faulting page itself is never resident.
type DistanceVictimFinder struct{}

// NewDistanceVictimFinder returns a DistanceVictimFinder.
func NewDistanceVictimFinder() *DistanceVictimFinder {
	return &DistanceVictimFinder{}
}

// FindVictim returns the page maximizing (faulting - page) mod NumPages.
func (e *DistanceVictimFinder) FindVictim(
	table vm.PageTable,
	faulting vm.PageID,
) vm.PageID {
	numPages := table.NumPages()
	victim := vm.PageID(0)
	longest := 0

	for _, page := range table.ResidentPages() {
		d := Distance(faulting, page, numPages)
		if d > longest {
			longest = d
			victim = page
		}
	}

	return victim
}

// Distance returns (from - to) mod numPages as a value in [0, numPages).
func Distance(from, to vm.PageID, numPages int) int {
	d := (int(from) - int(to)) % numPages
	if d < 0 {
		d += numPages
	}

	return d
}
