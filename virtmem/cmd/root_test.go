package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/elliott-beach/virtmem/mem/disk"
	"github.com/elliott-beach/virtmem/mem/vm/mmu"
	"github.com/elliott-beach/virtmem/mem/vm/replacement"
	"github.com/elliott-beach/virtmem/workload"
)

var _ = Describe("Root command", func() {
	var (
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	)

	execute := func(args ...string) error {
		c := newRootCmd()
		c.SetArgs(args)
		c.SetOut(stdout)
		c.SetErr(stderr)

		return c.Execute()
	}

	BeforeEach(func() {
		stdout = new(bytes.Buffer)
		stderr = new(bytes.Buffer)
	})

	DescribeTable("should reject bad arguments",
		func(args []string, target error) {
			err := execute(args...)

			Expect(err).To(HaveOccurred())
			if target != nil {
				Expect(err).To(MatchError(target))
			}
			Expect(stdout.String()).NotTo(ContainSubstring("result is"))
		},
		Entry("too few", []string{"4", "2", "fifo"}, nil),
		Entry("too many", []string{"4", "2", "fifo", "scan", "x"}, nil),
		Entry("pages not a number", []string{"four", "2", "fifo", "scan"}, nil),
		Entry("no frames", []string{"4", "0", "fifo", "scan"}, nil),
		Entry("negative pages", []string{"-4", "2", "fifo", "scan"}, nil),
		Entry("unknown algorithm", []string{"4", "2", "lru", "scan"},
			replacement.ErrUnknownPolicy),
		Entry("unknown program", []string{"4", "2", "fifo", "grep"},
			workload.ErrUnknownProgram),
	)

	It("should print the result and the counters", func() {
		err := execute("--in-memory", "4", "2", "fifo", "scan")
		Expect(err).NotTo(HaveOccurred())

		backing, _ := disk.NewMemDisk(4)
		m := mmu.MakeBuilder().
			WithNumPages(4).
			WithNumFrames(2).
			WithDisk(backing).
			WithVictimFinder(replacement.NewFIFOVictimFinder()).
			Build("MMU")
		result, err := workload.Scan(m.AddressSpace(), nil)
		Expect(err).NotTo(HaveOccurred())
		stats := m.Stats()

		Expect(stdout.String()).To(Equal(fmt.Sprintf(
			"scan result is %d\n%-5d%-5d%-5d\n",
			result, stats.Reads, stats.Writes, stats.Faults)))
	})

	It("should back the memory with a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "disk")

		err := execute("--disk", path, "3", "3", "custom", "focus")
		Expect(err).NotTo(HaveOccurred())

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Size()).To(Equal(int64(3 * disk.BlockSize)))

		lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(HavePrefix("focus result is "))
		Expect(lines[1]).To(Equal(fmt.Sprintf("%-5d%-5d%-5d", 3, 0, 6)))
	})

	It("should trace faults", func() {
		err := execute("--in-memory", "--trace", "2", "1", "rand", "scan")
		Expect(err).NotTo(HaveOccurred())

		Expect(stderr.String()).To(ContainSubstring("fault, 1, presence"))
		Expect(stderr.String()).To(ContainSubstring("evict, page 0"))
	})

	It("should record faults into a database", func() {
		name := filepath.Join(GinkgoT().TempDir(), "rec")

		err := execute("--in-memory", "--record="+name, "2", "2", "fifo", "sort")
		Expect(err).NotTo(HaveOccurred())

		Expect(name + ".sqlite3").To(BeAnExistingFile())
		Expect(stderr.String()).To(ContainSubstring(
			"Recorded 4 faults and 0 evictions"))
	})

	It("should take defaults from the environment", func() {
		path := filepath.Join(GinkgoT().TempDir(), "envdisk")
		GinkgoT().Setenv(diskEnv, path)
		GinkgoT().Setenv(seedEnv, "17")

		c := newRootCmd()

		Expect(c.Flags().Lookup("disk").DefValue).To(Equal(path))
		Expect(c.Flags().Lookup("seed").DefValue).To(Equal("17"))
	})

	It("should ignore a malformed seed in the environment", func() {
		GinkgoT().Setenv(seedEnv, "many")

		Expect(envInt64(seedEnv, defaultSeed)).To(Equal(int64(defaultSeed)))
	})
})
