// Package workload provides the programs that run on the virtual memory.
package workload

import (
	"errors"
	"fmt"
)

// ErrUnknownProgram is returned when a program name is not recognized.
var ErrUnknownProgram = errors.New("unknown program")

// Memory is the byte-addressable memory that a program runs on.
type Memory interface {
	Len() int
	Load(addr int) (byte, error)
	Store(addr int, value byte) error
}

// Progress tracks how much of a phase is done.
type Progress interface {
	IncrementFinished(amount uint64)
}

// A Reporter is told when a program starts and ends a phase.
type Reporter interface {
	StartPhase(name string, total uint64) Progress
	EndPhase(p Progress)
}

// A Program runs on a memory and returns a checksum of what it computed.
type Program func(m Memory, r Reporter) (int64, error)

// Program names accepted by Lookup.
const (
	ScanProgram  = "scan"
	SortProgram  = "sort"
	FocusProgram = "focus"
)

// Names returns the program names accepted by Lookup.
func Names() []string {
	return []string{SortProgram, ScanProgram, FocusProgram}
}

// Lookup returns the program with the given name.
func Lookup(name string) (Program, error) {
	switch name {
	case ScanProgram:
		return Scan, nil
	case SortProgram:
		return Sort, nil
	case FocusProgram:
		return Focus, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProgram, name)
	}
}

// Discard is a Reporter that ignores all progress.
var Discard Reporter = discard{}

type discard struct{}

func (discard) StartPhase(string, uint64) Progress { return discard{} }

func (discard) EndPhase(Progress) {}

func (discard) IncrementFinished(uint64) {}

// Progress is reported in batches so that a reporter is not called on every
// byte.
const reportInterval = 4096

type phase struct {
	reporter Reporter
	progress Progress
	pending  uint64
}

func startPhase(r Reporter, name string, total uint64) *phase {
	if r == nil {
		r = Discard
	}

	return &phase{
		reporter: r,
		progress: r.StartPhase(name, total),
	}
}

func (p *phase) step() {
	p.pending++
	if p.pending == reportInterval {
		p.flush()
	}
}

func (p *phase) flush() {
	if p.pending > 0 {
		p.progress.IncrementFinished(p.pending)
		p.pending = 0
	}
}

func (p *phase) end() {
	p.flush()
	p.reporter.EndPhase(p.progress)
}

// sumSigned adds up the memory content, reading each byte as a signed value.
func sumSigned(m Memory, r Reporter, name string) (int64, error) {
	length := m.Len()
	p := startPhase(r, name+": sum", uint64(length))
	defer p.end()

	var total int32

	for i := 0; i < length; i++ {
		v, err := m.Load(i)
		if err != nil {
			return 0, err
		}

		total += int32(int8(v))
		p.step()
	}

	return int64(total), nil
}

// fill sets every byte of the memory to the value returned by next.
func fill(m Memory, r Reporter, name string, next func(i int) byte) error {
	length := m.Len()
	p := startPhase(r, name+": fill", uint64(length))
	defer p.end()

	for i := 0; i < length; i++ {
		if err := m.Store(i, next(i)); err != nil {
			return err
		}

		p.step()
	}

	return nil
}
