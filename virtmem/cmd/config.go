package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/elliott-beach/virtmem/mem/vm/replacement"
	"github.com/elliott-beach/virtmem/workload"
)

const (
	defaultDiskPath = "myvirtualdisk"
	defaultSeed     = 1

	diskEnv = "VIRTMEM_DISK"
	seedEnv = "VIRTMEM_SEED"
)

type config struct {
	numPages  int
	numFrames int
	policy    string
	program   string

	diskPath    string
	inMemory    bool
	seed        int64
	trace       bool
	record      bool
	recordName  string
	monitor     bool
	monitorPort int
	openBrowser bool
}

// loadEnv reads a .env file in the working directory, if there is one.
// Variables already set in the environment win.
func loadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring %s=%q: not an integer\n", key, v)
		return fallback
	}

	return n
}

// parseArgs fills the positional part of the config.
func (c *config) parseArgs(args []string) error {
	var err error

	c.numPages, err = parseCount("pages", args[0])
	if err != nil {
		return err
	}

	c.numFrames, err = parseCount("frames", args[1])
	if err != nil {
		return err
	}

	c.policy = args[2]
	if _, err := replacement.New(c.policy, nil); err != nil {
		return err
	}

	c.program = args[3]
	if _, err := workload.Lookup(c.program); err != nil {
		return err
	}

	return nil
}

func parseCount(what, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid number of %s %q", what, arg)
	}

	if n <= 0 {
		return 0, fmt.Errorf("number of %s must be positive, got %d", what, n)
	}

	return n, nil
}
