package disk

// MemDisk keeps its blocks in memory. Blocks that have never been written are
// not allocated and read as zeros.
type MemDisk struct {
	numBlocks int
	blocks    map[int][]byte
	closed    bool
}

// NewMemDisk creates an in-memory disk with the given number of blocks.
func NewMemDisk(numBlocks int) (*MemDisk, error) {
	if numBlocks <= 0 {
		return nil, ErrInvalidBlockCount
	}

	return &MemDisk{
		numBlocks: numBlocks,
		blocks:    make(map[int][]byte),
	}, nil
}

// NumBlocks returns the number of blocks the disk can hold.
func (d *MemDisk) NumBlocks() int {
	return d.numBlocks
}

// NumAllocatedBlocks returns the number of blocks that have been written.
func (d *MemDisk) NumAllocatedBlocks() int {
	return len(d.blocks)
}

// ReadBlock copies block index into out.
func (d *MemDisk) ReadBlock(index int, out []byte) error {
	if d.closed {
		return ErrClosed
	}

	if err := checkTransfer(index, d.numBlocks, out); err != nil {
		return err
	}

	block, ok := d.blocks[index]
	if !ok {
		clear(out[:BlockSize])
		return nil
	}

	copy(out[:BlockSize], block)

	return nil
}

// WriteBlock copies in into block index.
func (d *MemDisk) WriteBlock(index int, in []byte) error {
	if d.closed {
		return ErrClosed
	}

	if err := checkTransfer(index, d.numBlocks, in); err != nil {
		return err
	}

	block, ok := d.blocks[index]
	if !ok {
		block = make([]byte, BlockSize)
		d.blocks[index] = block
	}

	copy(block, in[:BlockSize])

	return nil
}

// Close drops all the blocks.
func (d *MemDisk) Close() error {
	d.closed = true
	d.blocks = nil

	return nil
}
