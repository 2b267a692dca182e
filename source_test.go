package geonear

import (
	"archive/zip"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRowsFixtures(t *testing.T) {
	for _, path := range []string{
		"testdata/cities.csv",
		"testdata/cities.csv.gz",
		"testdata/cities.csv.bz2",
		"testdata/cities.zip",
	} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			rows, err := ReadRows(path)
			require.NoError(t, err)
			require.Len(t, rows, 12)

			assert.Equal(t, "Coordinates", rows[0][len(rows[0])-1])
			assert.Equal(t, "Berlin", rows[1][1])
			assert.Equal(t, "52.52437,13.41053", rows[1][len(rows[1])-1])
			// Alternate names contain commas but stay one field.
			assert.Equal(t, "Berlim,Berlin", rows[1][3])

			recs := ParseRecords(rows)
			assert.Len(t, recs, 8)
		})
	}
}

func TestReadRowsMissingFile(t *testing.T) {
	for _, path := range []string{
		"testdata/missing.csv",
		"testdata/missing.csv.gz",
		"testdata/missing.zip",
	} {
		rows, err := ReadRows(path)
		assert.Nil(t, rows, path)
		assert.ErrorIs(t, err, fs.ErrNotExist, path)
	}
}

func TestReadRowsCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.csv.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip data"), 0644))

	rows, err := ReadRows(path)
	assert.Nil(t, rows)
	assert.ErrorContains(t, err, "creating gzip reader")
}

func TestReadRowsCorruptBzip2(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.csv.bz2")
	require.NoError(t, os.WriteFile(path, []byte("not bzip2 data"), 0644))

	rows, err := ReadRows(path)
	assert.Nil(t, rows)
	assert.ErrorContains(t, err, "reading "+path)
}

func TestReadRowsDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.txt")
	data := "id|name|coords\n1|Berlin|52.52437,13.41053\n2|Paris|48.85341,2.3488\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	rows, err := ReadRows(path, WithDelimiter('|'))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "Berlin", "52.52437,13.41053"}, rows[1])

	got := FindNearest(berlin, rows, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Berlin", got[0].Name)
}

func TestReadRowsInvalidDelimiter(t *testing.T) {
	rows, err := ReadRows("testdata/cities.csv", WithDelimiter('"'))
	assert.Nil(t, rows)
	assert.Error(t, err)
}

func TestReadRowsVariableFieldCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	data := "1;A;52.5,13.4\n2;48.8,2.3\n\n3;C;x;y;41.9,12.5\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	// encoding/csv drops blank lines.
	require.Len(t, rows, 3)

	got := FindNearest(berlin, rows, 3)
	assert.Equal(t, []string{"A", "48.8,2.3", "C"}, names(got))
}

func TestReadRowsZipEntriesInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.zip")
	fh, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(fh)
	_, err = zw.Create("nested/")
	require.NoError(t, err)
	for _, entry := range []struct{ name, body string }{
		{"part1.csv", "1;First;52.5,13.4\n"},
		{"part2.csv", "2;Second;48.8,2.3\n3;Third;41.9,12.5\n"},
	} {
		w, err := zw.Create(entry.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(entry.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, fh.Close())

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "First", rows[0][1])
	assert.Equal(t, "Second", rows[1][1])
	assert.Equal(t, "Third", rows[2][1])
}
