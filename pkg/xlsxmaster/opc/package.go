// Package opc reads and rewrites Open Packaging Convention containers in memory.
//
// A Package is copy-on-write: parts written with WritePart live in an overlay
// and the original archive is never modified. Bytes rebuilds a fresh archive,
// copying untouched parts raw and keeping the input part order.
package opc

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
)

// Package is an in-memory view of a zip package with pending writes.
type Package struct {
	reader  *zip.Reader
	index   map[string]*zip.File
	overlay map[string][]byte
	added   []string
}

// Open indexes the parts of a package held in data. data is not modified.
func Open(data []byte) (*Package, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errs.Structuralf("not a zip package: %v", err)
	}

	index := make(map[string]*zip.File, len(reader.File))
	for _, part := range reader.File {
		index[part.Name] = part
	}

	return &Package{
		reader:  reader,
		index:   index,
		overlay: make(map[string][]byte),
	}, nil
}

// Has reports whether the part exists, either in the archive or as a pending write.
func (p *Package) Has(name string) bool {
	if _, ok := p.overlay[name]; ok {
		return true
	}
	_, ok := p.index[name]
	return ok
}

// Parts lists part names: archive order first, then new parts in write order.
func (p *Package) Parts() []string {
	names := make([]string, 0, len(p.reader.File)+len(p.added))
	for _, part := range p.reader.File {
		names = append(names, part.Name)
	}
	return append(names, p.added...)
}

// ReadPart returns the current content of a part. A missing part wraps errs.ErrStructural.
func (p *Package) ReadPart(name string) ([]byte, error) {
	if data, ok := p.overlay[name]; ok {
		return append([]byte(nil), data...), nil
	}

	part, ok := p.index[name]
	if !ok {
		return nil, errs.Structuralf("part %s not found", name)
	}

	reader, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("read part %q: %w", name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read part %q: %w", name, err)
	}
	return data, nil
}

// WritePart stages new content for a part.
func (p *Package) WritePart(name string, data []byte) {
	if !p.Has(name) {
		p.added = append(p.added, name)
	}
	p.overlay[name] = append([]byte(nil), data...)
}

// Bytes builds the patched archive into a new buffer.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, part := range p.reader.File {
		data, ok := p.overlay[part.Name]
		if !ok {
			if err := writer.Copy(part); err != nil {
				return nil, fmt.Errorf("copy part %q: %w", part.Name, err)
			}
			continue
		}
		header := part.FileHeader
		if header.Method != zip.Store {
			header.Method = zip.Deflate
		}
		if err := writeRawEntry(writer, &header, data); err != nil {
			return nil, fmt.Errorf("write part %q: %w", part.Name, err)
		}
	}

	for _, name := range p.added {
		header := zip.FileHeader{Name: name, Method: zip.Deflate}
		if err := writeRawEntry(writer, &header, p.overlay[name]); err != nil {
			return nil, fmt.Errorf("write part %q: %w", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRawEntry(writer *zip.Writer, header *zip.FileHeader, data []byte) error {
	// Sizes and CRC are known up front, so no data descriptor is written.
	compressed, err := compressData(header.Method, data)
	if err != nil {
		return err
	}

	header.Flags &^= 0x8
	header.CRC32 = crc32.ChecksumIEEE(data)
	header.UncompressedSize64 = uint64(len(data))
	header.UncompressedSize = uint32(len(data))
	header.CompressedSize64 = uint64(len(compressed))
	header.CompressedSize = uint32(len(compressed))

	entry, err := writer.CreateRaw(header)
	if err != nil {
		return err
	}
	if len(compressed) == 0 {
		return nil
	}
	_, err = entry.Write(compressed)
	return err
}

func compressData(method uint16, data []byte) ([]byte, error) {
	switch method {
	case zip.Store:
		return data, nil
	case zip.Deflate:
		var buf bytes.Buffer
		zw, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(data); err != nil {
			_ = zw.Close()
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression method: %d", method)
	}
}
