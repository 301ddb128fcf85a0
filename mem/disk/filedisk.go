package disk

import (
	"errors"
	"fmt"
	"os"
)

// FileDisk keeps its blocks in a regular file. Block i lives at byte offset
// i*BlockSize.
type FileDisk struct {
	file      *os.File
	path      string
	numBlocks int
}

// Open creates or truncates the file at path and sizes it to hold numBlocks
// blocks. Any previous content of the file is discarded.
func Open(path string, numBlocks int) (*FileDisk, error) {
	if numBlocks <= 0 {
		return nil, ErrInvalidBlockCount
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open disk file: %w", err)
	}

	if err := f.Truncate(int64(numBlocks) * BlockSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("size disk file: %w", err)
	}

	return &FileDisk{
		file:      f,
		path:      path,
		numBlocks: numBlocks,
	}, nil
}

// Path returns the name of the file that backs the disk.
func (d *FileDisk) Path() string {
	return d.path
}

// NumBlocks returns the number of blocks the disk can hold.
func (d *FileDisk) NumBlocks() int {
	return d.numBlocks
}

// ReadBlock copies block index into out.
func (d *FileDisk) ReadBlock(index int, out []byte) error {
	if d.file == nil {
		return ErrClosed
	}

	if err := checkTransfer(index, d.numBlocks, out); err != nil {
		return err
	}

	_, err := d.file.ReadAt(out[:BlockSize], int64(index)*BlockSize)
	if err != nil {
		return fmt.Errorf("read block %d: %w", index, err)
	}

	return nil
}

// WriteBlock copies in into block index.
func (d *FileDisk) WriteBlock(index int, in []byte) error {
	if d.file == nil {
		return ErrClosed
	}

	if err := checkTransfer(index, d.numBlocks, in); err != nil {
		return err
	}

	_, err := d.file.WriteAt(in[:BlockSize], int64(index)*BlockSize)
	if err != nil {
		return fmt.Errorf("write block %d: %w", index, err)
	}

	return nil
}

// Close closes the backing file. Closing twice is allowed.
func (d *FileDisk) Close() error {
	if d.file == nil {
		return nil
	}

	var err error
	if e := d.file.Sync(); e != nil {
		err = errors.Join(err, fmt.Errorf("sync disk file: %w", e))
	}

	if e := d.file.Close(); e != nil {
		err = errors.Join(err, fmt.Errorf("close disk file: %w", e))
	}

	d.file = nil

	return err
}
