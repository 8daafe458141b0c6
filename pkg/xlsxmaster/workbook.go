package xlsxmaster

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Workbook pairs an excelize file with the charts to add when it is saved.
// Cells, styles and tables are authored through File(); charts registered
// with AddChart are injected into the saved bytes.
type Workbook struct {
	file   *excelize.File
	opts   Options
	charts []*ChartBuilder
}

// New creates a workbook backed by a fresh excelize file.
func New(opts Options) *Workbook {
	return &Workbook{file: excelize.NewFile(), opts: opts}
}

// Open opens an existing xlsx file.
func Open(path string, opts Options) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Workbook{file: f, opts: opts}, nil
}

// OpenReader reads an xlsx package from r.
func OpenReader(r io.Reader, opts Options) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: f, opts: opts}, nil
}

// File returns the underlying excelize file.
func (w *Workbook) File() *excelize.File {
	return w.file
}

// AddChart registers a chart on sheet at anchor and returns its builder.
// The sheet only has to exist by the time the workbook is saved.
func (w *Workbook) AddChart(sheet, anchor string) *ChartBuilder {
	b := NewChartBuilder(sheet, anchor)
	w.charts = append(w.charts, b)
	return b
}

// Charts returns the registered builders in registration order.
func (w *Workbook) Charts() []*ChartBuilder {
	return append([]*ChartBuilder(nil), w.charts...)
}

// WriteToBuffer saves the excelize file and injects every registered chart.
func (w *Workbook) WriteToBuffer() (*bytes.Buffer, error) {
	base, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if len(w.charts) == 0 {
		return base, nil
	}

	out, err := ApplyChartsWithOptions(base.Bytes(), w.opts, w.charts...)
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(out), nil
}

// Write writes the finished package to dst.
func (w *Workbook) Write(dst io.Writer) error {
	buf, err := w.WriteToBuffer()
	if err != nil {
		return err
	}
	_, err = buf.WriteTo(dst)
	return err
}

// SaveAs writes the finished package to path. The file is written to a
// temporary sibling first and renamed into place, so a failed save leaves
// any existing file intact.
func (w *Workbook) SaveAs(path string) error {
	buf, err := w.WriteToBuffer()
	if err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}

// Close drops the registered charts and closes the excelize file.
func (w *Workbook) Close() error {
	w.charts = nil
	return w.file.Close()
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := replaceFile(tmpName, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	cleanup = false
	return nil
}

func replaceFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if _, statErr := os.Stat(dst); statErr == nil {
		if removeErr := os.Remove(dst); removeErr != nil {
			return removeErr
		}
		return os.Rename(src, dst)
	}
	return err
}
