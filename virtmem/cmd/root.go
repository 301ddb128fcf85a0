// Package cmd provides the command-line interface of virtmem.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/elliott-beach/virtmem/sim"
)

func newRootCmd() *cobra.Command {
	err := loadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:   "virtmem <npages> <nframes> <rand|fifo|custom> <sort|scan|focus>",
		Short: "Run a program on a demand-paged virtual memory.",
		Long: `virtmem runs a program on a virtual memory of npages pages ` +
			`backed by nframes physical frames and a disk. Page faults are ` +
			`resolved with the given replacement algorithm. It prints the ` +
			`number of disk reads, disk writes and page faults.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(4)(cmd, args); err != nil {
				return err
			}

			return cfg.parseArgs(args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.record = cmd.Flags().Changed("record")
			cmd.SilenceUsage = true

			return run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfg.diskPath, "disk", envString(diskEnv, defaultDiskPath),
		"file that backs the virtual memory (env "+diskEnv+")")
	flags.BoolVar(&cfg.inMemory, "in-memory", false,
		"keep the backing store in memory instead of a file")
	flags.Int64Var(&cfg.seed, "seed", envInt64(seedEnv, defaultSeed),
		"seed of the rand algorithm (env "+seedEnv+")")
	flags.BoolVar(&cfg.trace, "trace", false,
		"log every page fault and eviction to stderr")
	flags.StringVar(&cfg.recordName, "record", "",
		"record faults and evictions into <name>.sqlite3, "+
			"use --record=<name> to pick the name")
	flags.Lookup("record").NoOptDefVal = " "
	flags.BoolVar(&cfg.monitor, "monitor", false,
		"serve the simulation state over HTTP while running")
	flags.IntVar(&cfg.monitorPort, "monitor-port", 0,
		"port of the monitoring server, random if not set")
	flags.BoolVar(&cfg.openBrowser, "open-browser", false,
		"open the monitoring server in a browser")

	return rootCmd
}

// Execute runs the root command and exits the process.
func Execute() {
	sim.UseGlobalIDGenerator()

	err := newRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
