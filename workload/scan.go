package workload

const scanPasses = 10

// Scan fills the memory with a repeating pattern and then reads it
// sequentially several times.
func Scan(m Memory, r Reporter) (int64, error) {
	err := fill(m, r, ScanProgram, func(i int) byte { return byte(i % 256) })
	if err != nil {
		return 0, err
	}

	length := m.Len()
	p := startPhase(r, ScanProgram+": sum", uint64(scanPasses*length))
	defer p.end()

	var total uint32

	for j := 0; j < scanPasses; j++ {
		for i := 0; i < length; i++ {
			v, err := m.Load(i)
			if err != nil {
				return 0, err
			}

			total += uint32(v)
			p.step()
		}
	}

	return int64(total), nil
}
