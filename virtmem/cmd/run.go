package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"

	"github.com/pkg/browser"
	"github.com/rs/xid"

	"github.com/elliott-beach/virtmem/datarecording"
	"github.com/elliott-beach/virtmem/mem/disk"
	"github.com/elliott-beach/virtmem/mem/trace"
	"github.com/elliott-beach/virtmem/mem/vm/mmu"
	"github.com/elliott-beach/virtmem/mem/vm/replacement"
	"github.com/elliott-beach/virtmem/monitoring"
	"github.com/elliott-beach/virtmem/workload"
)

func run(cfg *config, out, errOut io.Writer) error {
	backing, err := openDisk(cfg)
	if err != nil {
		return err
	}
	defer backing.Close()

	victimFinder, err := replacement.New(cfg.policy,
		rand.New(rand.NewSource(cfg.seed)))
	if err != nil {
		return err
	}

	program, err := workload.Lookup(cfg.program)
	if err != nil {
		return err
	}

	m := mmu.MakeBuilder().
		WithNumPages(cfg.numPages).
		WithNumFrames(cfg.numFrames).
		WithDisk(backing).
		WithVictimFinder(victimFinder).
		Build("MMU")

	if cfg.trace {
		m.AcceptHook(trace.NewLogTracer(log.New(errOut, "", 0)))
	}

	var rec *recording
	if cfg.record {
		rec = startRecording(cfg.recordName)
		m.AcceptHook(trace.NewDBTracer(rec.recorder))
	}

	reporter := workload.Discard
	if cfg.monitor {
		reporter = startMonitor(cfg, m, errOut)
	}

	result, err := program(m.AddressSpace(), reporter)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.program, err)
	}

	fmt.Fprintf(out, "%s result is %d\n", cfg.program, result)

	if rec != nil {
		err = rec.summarize(errOut)
		if err != nil {
			return err
		}
	}

	stats := m.Stats()
	fmt.Fprintf(out, "%-5d%-5d%-5d\n", stats.Reads, stats.Writes, stats.Faults)

	return nil
}

func openDisk(cfg *config) (disk.Disk, error) {
	if cfg.inMemory {
		return disk.NewMemDisk(cfg.numPages)
	}

	d, err := disk.Open(cfg.diskPath, cfg.numPages)
	if err != nil {
		return nil, fmt.Errorf("couldn't create virtual disk: %w", err)
	}

	return d, nil
}

func startMonitor(cfg *config, m *mmu.Comp, errOut io.Writer) workload.Reporter {
	monitor := monitoring.NewMonitor().WithPortNumber(cfg.monitorPort)
	monitor.RegisterComponent(m)

	url := monitor.StartServer()
	if cfg.openBrowser {
		err := browser.OpenURL(url)
		if err != nil {
			fmt.Fprintf(errOut, "couldn't open browser: %v\n", err)
		}
	}

	return monitor
}

type recording struct {
	name     string
	recorder datarecording.DataRecorder
}

func startRecording(name string) *recording {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "virtmem_" + xid.New().String()
	}

	return &recording{
		name:     name,
		recorder: datarecording.New(name),
	}
}

// summarize flushes the recorded rows and reports how many there are.
func (r *recording) summarize(errOut io.Writer) error {
	r.recorder.Flush()

	filename := r.name + ".sqlite3"
	reader := datarecording.NewReader(filename)
	defer reader.Close()

	ctx := context.Background()

	faults, err := reader.Count(ctx, trace.FaultTable)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}

	evictions, err := reader.Count(ctx, trace.EvictionTable)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}

	fmt.Fprintf(errOut, "Recorded %d faults and %d evictions in %s\n",
		faults, evictions, filename)

	return nil
}
