package geonear

import (
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadRows reads the delimited city file at path and returns its rows as
// string fields. Files ending in .bz2, .gz or .zip are decompressed on the
// fly; for zip archives every file entry is read in archive order.
//
// Lines the CSV tokenizer cannot parse are skipped. Failing to open or read
// the source is an error, and no rows are returned with it.
func ReadRows(path string, opts ...Option) ([][]string, error) {
	cfg := newConfig(opts)

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return readZipRows(path, cfg.Delimiter)
	}

	r, cleanup, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	rows, err := readDelimited(r, cfg.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

// openSource opens path, wrapping it in a decompressor chosen by extension.
// The returned cleanup closes everything that was opened.
func openSource(path string) (io.Reader, func() error, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bz2":
		return bzip2.NewReader(fh), fh.Close, nil
	case ".gz":
		gz, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, nil, fmt.Errorf("creating gzip reader for %s: %w", path, err)
		}
		return gz, func() error {
			gzErr := gz.Close()
			if err := fh.Close(); err != nil {
				return err
			}
			return gzErr
		}, nil
	default:
		return fh, fh.Close, nil
	}
}

func readZipRows(path string, delim rune) ([][]string, error) {
	rz, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening zip file %s: %w", path, err)
	}
	defer rz.Close()

	var rows [][]string
	for _, f := range rz.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entryRows, err := readZipEntry(f, delim)
		if err != nil {
			return nil, fmt.Errorf("reading %s in %s: %w", f.Name, path, err)
		}
		rows = append(rows, entryRows...)
	}
	return rows, nil
}

// readZipEntry is split out so the entry is closed before the next opens.
func readZipEntry(f *zip.File, delim rune) ([][]string, error) {
	fi, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening file in zip: %w", err)
	}
	defer fi.Close()

	return readDelimited(fi, delim)
}

func readDelimited(r io.Reader, delim rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}
