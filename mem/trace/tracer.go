// Package trace provides tracers that record the faults and evictions of an
// MMU.
package trace

import (
	"log"

	"github.com/elliott-beach/virtmem/datarecording"
	"github.com/elliott-beach/virtmem/mem/vm/mmu"
	"github.com/elliott-beach/virtmem/sim"
)

// Table names used by the DBTracer.
const (
	FaultTable    = "fault"
	EvictionTable = "eviction"
)

// faultEntry represents a resolved fault in the database
type faultEntry struct {
	ID          string
	Seq         uint64
	Page        int
	Access      string
	Kind        string
	Resolution  string
	Frame       int
	Victim      int
	VictimDirty bool
}

// evictionEntry represents an evicted page in the database
type evictionEntry struct {
	FaultID string
	Page    int
	Frame   int
	Dirty   bool
	ForPage int
}

var _ sim.LogHook = (*LogTracer)(nil)

// A LogTracer is a hook that prints the faults and evictions of an MMU.
type LogTracer struct {
	sim.LogHookBase
}

// NewLogTracer creates a new LogTracer.
func NewLogTracer(logger *log.Logger) *LogTracer {
	t := new(LogTracer)
	t.Logger = logger

	return t
}

// Func prints the hook item.
func (t *LogTracer) Func(ctx sim.HookCtx) {
	switch item := ctx.Item.(type) {
	case mmu.FaultRecord:
		t.Printf("fault, %d, %s, page %d, %s, %s, frame %d\n",
			item.Seq,
			item.Kind,
			item.Page,
			item.Access,
			item.Resolution,
			item.Frame,
		)
	case mmu.EvictionRecord:
		t.Printf("evict, page %d, frame %d, dirty %t, for page %d\n",
			item.Page,
			item.Frame,
			item.Dirty,
			item.ForPage,
		)
	}
}

// A DBTracer is a hook that records the faults and evictions of an MMU into
// a database using the data recorder.
type DBTracer struct {
	dataRecorder datarecording.DataRecorder
}

// NewDBTracer creates a new DBTracer and the tables it writes into.
func NewDBTracer(dataRecorder datarecording.DataRecorder) *DBTracer {
	t := &DBTracer{
		dataRecorder: dataRecorder,
	}

	t.dataRecorder.CreateTable(FaultTable, faultEntry{})
	t.dataRecorder.CreateTable(EvictionTable, evictionEntry{})

	return t
}

// Func records the hook item.
func (t *DBTracer) Func(ctx sim.HookCtx) {
	switch item := ctx.Item.(type) {
	case mmu.FaultRecord:
		t.dataRecorder.InsertData(FaultTable, faultEntry{
			ID:          item.ID,
			Seq:         item.Seq,
			Page:        int(item.Page),
			Access:      item.Access.String(),
			Kind:        item.Kind.String(),
			Resolution:  item.Resolution.String(),
			Frame:       int(item.Frame),
			Victim:      int(item.Victim),
			VictimDirty: item.VictimDirty,
		})
	case mmu.EvictionRecord:
		t.dataRecorder.InsertData(EvictionTable, evictionEntry{
			FaultID: item.FaultID,
			Page:    int(item.Page),
			Frame:   int(item.Frame),
			Dirty:   item.Dirty,
			ForPage: int(item.ForPage),
		})
	}
}
