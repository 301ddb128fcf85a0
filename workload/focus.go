package workload

import "math/rand"

const (
	focusSeed       = 38290
	focusRounds     = 100
	focusWrites     = 100
	focusWindowSize = 25
)

// Focus clears the memory and then writes random values into small windows
// at random places.
func Focus(m Memory, r Reporter) (int64, error) {
	rng := rand.New(rand.NewSource(focusSeed))

	err := fill(m, r, FocusProgram, func(int) byte { return 0 })
	if err != nil {
		return 0, err
	}

	length := int64(m.Len())
	p := startPhase(r, FocusProgram+": write", focusRounds*focusWrites)

	for j := 0; j < focusRounds; j++ {
		start := rng.Int63() % length

		for i := 0; i < focusWrites; i++ {
			addr := (start + rng.Int63()%focusWindowSize) % length

			err := m.Store(int(addr), byte(rng.Int63()))
			if err != nil {
				p.end()
				return 0, err
			}

			p.step()
		}
	}

	p.end()

	return sumSigned(m, r, FocusProgram)
}
