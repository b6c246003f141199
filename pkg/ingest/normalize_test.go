package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subjectlab/boardmerge/pkg/errors"
	"github.com/subjectlab/boardmerge/pkg/ingest"
)

func TestNormalize(t *testing.T) {
	t.Run("routes sentinels into term lists", func(t *testing.T) {
		rows := []ingest.Row{
			{"subject_name": "Graphene", "subcategory_name": "Materials"},
			{"subject_name": "Battery", "subcategory_name": "_include"},
			{"subject_name": "Asbestos", "subcategory_name": "_exclude"},
			{"subject_name": "Aerogel", "subcategory_name": ""},
		}

		d, err := ingest.Normalize(rows)
		require.NoError(t, err)

		assert.Equal(t, []ingest.SubjectRow{
			{Name: "Graphene", Category: "Materials"},
			{Name: "Aerogel"},
		}, d.Subjects)
		assert.Equal(t, []string{"Battery"}, d.IncludeTerms)
		assert.Equal(t, []string{"Asbestos"}, d.ExcludeTerms)
		assert.Equal(t, []string{"Materials"}, d.Subcategories)
	})

	t.Run("column aliases", func(t *testing.T) {
		rows := []ingest.Row{
			{"term": "Graphene", "category": "Materials"},
			{"name": "Aerogel", "subcategory": "Foams"},
		}

		d, err := ingest.Normalize(rows)
		require.NoError(t, err)
		assert.Equal(t, []ingest.SubjectRow{
			{Name: "Graphene", Category: "Materials"},
			{Name: "Aerogel", Category: "Foams"},
		}, d.Subjects)
	})

	t.Run("does not deduplicate", func(t *testing.T) {
		rows := []ingest.Row{
			{"subject_name": "Quantum", "subcategory_name": "Hardware"},
			{"subject_name": "Quantum", "subcategory_name": "Software"},
			{"subject_name": "Battery", "subcategory_name": "_exclude"},
			{"subject_name": "Battery", "subcategory_name": "_include"},
		}

		d, err := ingest.Normalize(rows)
		require.NoError(t, err)
		assert.Len(t, d.Subjects, 2, "duplicate subjects survive normalization")
		assert.Equal(t, []string{"Battery"}, d.IncludeTerms)
		assert.Equal(t, []string{"Battery"}, d.ExcludeTerms)
	})

	t.Run("distinct subcategories keep first-seen casing", func(t *testing.T) {
		rows := []ingest.Row{
			{"subject_name": "A", "subcategory_name": "Materials"},
			{"subject_name": "B", "subcategory_name": "MATERIALS"},
			{"subject_name": "C", "subcategory_name": "Foams"},
		}

		d, err := ingest.Normalize(rows)
		require.NoError(t, err)
		assert.Equal(t, []string{"Materials", "Foams"}, d.Subcategories)
	})

	t.Run("skips blank rows", func(t *testing.T) {
		rows := []ingest.Row{
			{"subject_name": "  ", "subcategory_name": " "},
			{"subject_name": "Graphene"},
		}

		d, err := ingest.Normalize(rows)
		require.NoError(t, err)
		assert.Len(t, d.Subjects, 1)
	})

	t.Run("row without a subject name is terminal", func(t *testing.T) {
		rows := []ingest.Row{
			{"subject_name": "Graphene"},
			{"subcategory_name": "Materials"},
		}

		d, err := ingest.Normalize(rows)
		assert.Nil(t, d, "no partial dataset on failure")
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestRowsFromRecords(t *testing.T) {
	records := [][]string{
		{"", ""},
		{"\uFEFFSubject Name", "Subcategory Name"},
		{"Graphene", "Materials"},
		{"Aerogel"}, // short record
	}

	rows := ingest.RowsFromRecords(records)
	require.Len(t, rows, 2)
	assert.Equal(t, "Graphene", rows[0]["subject_name"])
	assert.Equal(t, "Materials", rows[0]["subcategory_name"])
	assert.Equal(t, "Aerogel", rows[1]["subject_name"])
	assert.Equal(t, "", rows[1]["subcategory_name"])
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Subject Name", "subject_name"},
		{"  SUBCATEGORY  NAME ", "subcategory_name"},
		{"\uFEFFname", "name"},
		{"term", "term"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ingest.NormalizeHeader(tt.in))
	}
}
