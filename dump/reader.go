package dump

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

const (
	// initialLineBytes is the scanner's starting buffer size.
	initialLineBytes = 1 << 20
	// maxLineBytes bounds a single dump line. Work payloads carrying long
	// subject lists run to hundreds of kilobytes; 16 MiB leaves headroom.
	maxLineBytes = 16 << 20
)

// Reader streams decompressed text lines from a gzip-compressed dump file.
// The whole decompressed content is never held in memory. A Reader cannot
// seek; restarting means opening a new Reader from the beginning.
type Reader struct {
	file    *os.File
	size    int64
	counter *countingReader
	gz      *gzip.Reader
	scanner *bufio.Scanner
}

// Open opens the dump file at path for streaming.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat dump file: %w", err)
	}

	counter := &countingReader{reader: file}
	gz, err := gzip.NewReader(counter)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, initialLineBytes), maxLineBytes)

	return &Reader{
		file:    file,
		size:    info.Size(),
		counter: counter,
		gz:      gz,
		scanner: scanner,
	}, nil
}

// Scan advances to the next line. It returns false at end of stream or on
// a read error; check Err after Scan returns false.
func (r *Reader) Scan() bool {
	return r.scanner.Scan()
}

// Line returns the current line without its trailing newline.
func (r *Reader) Line() string {
	return r.scanner.Text()
}

// Err returns the first error encountered while scanning, if any.
func (r *Reader) Err() error {
	return r.scanner.Err()
}

// BytesRead reports cumulative bytes consumed from the compressed stream.
// This is an approximation of record-based progress, not a linear measure
// of it: compression ratio and record size vary across the dump, and the
// decompressor reads ahead of the line currently returned.
func (r *Reader) BytesRead() int64 {
	return r.counter.n
}

// Size returns the compressed file size in bytes.
func (r *Reader) Size() int64 {
	return r.size
}

// Close releases the underlying file and decompressor.
func (r *Reader) Close() error {
	gzErr := r.gz.Close()
	fileErr := r.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}

// countingReader counts bytes passing through it.
type countingReader struct {
	reader io.Reader
	n      int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.n += int64(n)
	return n, err
}
