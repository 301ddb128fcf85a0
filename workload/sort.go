package workload

import (
	"math/rand"
	"sort"
)

const sortSeed = 4856

// Sort fills the memory with random bytes and sorts them in place.
func Sort(m Memory, r Reporter) (int64, error) {
	rng := rand.New(rand.NewSource(sortSeed))

	err := fill(m, r, SortProgram, func(int) byte { return byte(rng.Int63()) })
	if err != nil {
		return 0, err
	}

	p := startPhase(r, SortProgram+": sort", 1)
	s := &byteSorter{m: m}
	sort.Sort(s)
	p.step()
	p.end()

	if s.err != nil {
		return 0, s.err
	}

	return sumSigned(m, r, SortProgram)
}

// byteSorter sorts the memory as signed bytes. It stops touching the memory
// after the first error, which is reported once sorting returns.
type byteSorter struct {
	m   Memory
	err error
}

func (s *byteSorter) Len() int {
	return s.m.Len()
}

func (s *byteSorter) Less(i, j int) bool {
	a, b, ok := s.load(i, j)
	if !ok {
		return false
	}

	return int8(a) < int8(b)
}

func (s *byteSorter) Swap(i, j int) {
	a, b, ok := s.load(i, j)
	if !ok {
		return
	}

	if s.err = s.m.Store(i, b); s.err != nil {
		return
	}

	s.err = s.m.Store(j, a)
}

func (s *byteSorter) load(i, j int) (a, b byte, ok bool) {
	if s.err != nil {
		return 0, 0, false
	}

	if a, s.err = s.m.Load(i); s.err != nil {
		return 0, 0, false
	}

	if b, s.err = s.m.Load(j); s.err != nil {
		return 0, 0, false
	}

	return a, b, true
}
