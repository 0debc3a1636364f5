package parser

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Container is a read-only view of a zip-format OOXML package.
// Reads are safe for concurrent use: each ReadEntry opens its own
// decompressor over the shared io.ReaderAt.
type Container struct {
	name   string
	zr     *zip.Reader
	closer io.Closer
	files  map[string]*zip.File
	order  []string
}

// Open opens the container at path.
func Open(path string) (*Container, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContainer, path, err)
	}
	return newContainer(path, &rc.Reader, rc), nil
}

// OpenBytes opens a container held in memory, such as an embedded workbook.
func OpenBytes(name string, data []byte) (*Container, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContainer, name, err)
	}
	return newContainer(name, zr, nil), nil
}

func newContainer(name string, zr *zip.Reader, closer io.Closer) *Container {
	c := &Container{
		name:   name,
		zr:     zr,
		closer: closer,
		files:  make(map[string]*zip.File, len(zr.File)),
		order:  make([]string, 0, len(zr.File)),
	}
	for _, f := range zr.File {
		if _, dup := c.files[f.Name]; dup {
			continue
		}
		c.files[f.Name] = f
		c.order = append(c.order, f.Name)
	}
	return c
}

// Name returns the path or name the container was opened with.
func (c *Container) Name() string { return c.name }

// Close releases the underlying file, if any.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// Has reports whether the container holds an entry named name.
func (c *Container) Has(name string) bool {
	_, ok := c.files[name]
	return ok
}

// ReadEntry returns the decompressed bytes of the named entry.
func (c *Container) ReadEntry(name string) ([]byte, error) {
	f, ok := c.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// ListEntries returns entry paths starting with prefix, in archive order.
func (c *Container) ListEntries(prefix string) []string {
	var out []string
	for _, name := range c.order {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}
