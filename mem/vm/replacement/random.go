package replacement

import (
	"math/rand"

	"github.com/elliott-beach/virtmem/mem/vm"
)

// RandomVictimFinder evicts a resident page chosen uniformly at random.
type RandomVictimFinder struct {
	rng *rand.Rand
}

// NewRandomVictimFinder returns a RandomVictimFinder that draws from rng.
func NewRandomVictimFinder(rng *rand.Rand) *RandomVictimFinder {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	return &RandomVictimFinder{rng: rng}
}

// FindVictim returns a random resident page.
func (e *RandomVictimFinder) FindVictim(
	table vm.PageTable,
	_ vm.PageID,
) vm.PageID {
	pages := table.ResidentPages()
	residentPagesMustExist(pages)

	return pages[e.rng.Intn(len(pages))]
}
