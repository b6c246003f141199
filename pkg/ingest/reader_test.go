package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subjectlab/boardmerge/pkg/errors"
	"github.com/subjectlab/boardmerge/pkg/ingest"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Run("reads header-normalized rows", func(t *testing.T) {
		path := writeCSV(t, "import.csv", "Subject Name,Subcategory Name\nGraphene,Materials\n")

		rows, err := ingest.ReadFile(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Graphene", rows[0]["subject_name"])
		assert.Equal(t, "Materials", rows[0]["subcategory_name"])
	})

	t.Run("rejects non-csv extensions", func(t *testing.T) {
		path := writeCSV(t, "import.xlsx", "whatever")

		_, err := ingest.ReadFile(path)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("extension check is case-insensitive", func(t *testing.T) {
		path := writeCSV(t, "import.CSV", "subject_name\nGraphene\n")

		rows, err := ingest.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("missing file is an IO error", func(t *testing.T) {
		_, err := ingest.ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
		require.Error(t, err)
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})
}
