package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subjectlab/boardmerge/pkg/board"
	"github.com/subjectlab/boardmerge/pkg/errors"
	"github.com/subjectlab/boardmerge/pkg/ingest"
	"github.com/subjectlab/boardmerge/pkg/reconcile"
)

func TestApply(t *testing.T) {
	t.Run("clean import inserts subjects and terms", func(t *testing.T) {
		b := seedBoard(t)
		d := &ingest.Dataset{
			Subjects:      []ingest.SubjectRow{{Name: "Aerogel", Category: "Foams"}},
			IncludeTerms:  []string{"Nanotube"},
			Subcategories: []string{"Foams"},
		}
		cls := reconcile.Classify(b, d)
		require.False(t, cls.HasConflicts())

		merged, err := reconcile.Apply(b, d, cls, nil)
		require.NoError(t, err)

		sub, cat, ok := merged.Subject("Aerogel")
		require.True(t, ok)
		assert.Equal(t, "Foams", cat.Name)
		assert.Equal(t, board.SourceCSV, sub.Source)
		assert.True(t, sub.IsNewTerm)

		_, ok = merged.Term("Nanotube", board.Include)
		assert.True(t, ok)

		_, _, ok = b.Subject("Aerogel")
		assert.False(t, ok, "input board must stay untouched")
	})

	t.Run("auto-merge moves the uncategorized subject", func(t *testing.T) {
		b := seedBoard(t)
		d := &ingest.Dataset{
			Subjects: []ingest.SubjectRow{{Name: "Graphene", Category: "Materials"}},
		}
		cls := reconcile.Classify(b, d)
		require.Len(t, cls.AutoMerges, 1)

		merged, err := reconcile.Apply(b, d, cls, nil)
		require.NoError(t, err)

		sub, cat, ok := merged.Subject("Graphene")
		require.True(t, ok)
		assert.Equal(t, "Materials", cat.Name)
		assert.Equal(t, "Uncategorized", sub.OriginalCategory)
		assert.Len(t, merged.Subjects(), 2, "no second Graphene inserted")
	})

	t.Run("unresolved conflicts refuse to apply", func(t *testing.T) {
		b := seedBoard(t)
		d := &ingest.Dataset{
			Subjects: []ingest.SubjectRow{{Name: "Silicon", Category: "Semiconductors"}},
		}
		cls := reconcile.Classify(b, d)
		require.True(t, cls.HasConflicts())

		_, err := reconcile.Apply(b, d, cls, nil)
		require.Error(t, err)
		assert.True(t, errors.IsConflict(err))
	})

	t.Run("category conflict keep_existing", func(t *testing.T) {
		b := seedBoard(t)
		d := &ingest.Dataset{
			Subjects:      []ingest.SubjectRow{{Name: "Silicon", Category: "Semiconductors"}},
			Subcategories: []string{"Semiconductors"},
		}
		cls := reconcile.Classify(b, d)

		merged, err := reconcile.Apply(b, d, cls, map[string]reconcile.Resolution{
			"silicon": {Choice: reconcile.KeepExisting},
		})
		require.NoError(t, err)

		_, cat, ok := merged.Subject("Silicon")
		require.True(t, ok)
		assert.Equal(t, "Materials", cat.Name)
		assert.Len(t, merged.Subjects(), 2, "no duplicate Silicon")
	})

	t.Run("category conflict use_new moves the subject", func(t *testing.T) {
		b := seedBoard(t)
		d := &ingest.Dataset{
			Subjects:      []ingest.SubjectRow{{Name: "Silicon", Category: "Semiconductors"}},
			Subcategories: []string{"Semiconductors"},
		}
		cls := reconcile.Classify(b, d)

		merged, err := reconcile.Apply(b, d, cls, map[string]reconcile.Resolution{
			"Silicon": {Choice: reconcile.UseNew},
		})
		require.NoError(t, err)

		sub, cat, ok := merged.Subject("Silicon")
		require.True(t, ok)
		assert.Equal(t, "Semiconductors", cat.Name)
		assert.Equal(t, "Materials", sub.OriginalCategory)
		assert.Len(t, merged.Subjects(), 2)
	})

	t.Run("use_new with a target category override", func(t *testing.T) {
		b := seedBoard(t)
		d := &ingest.Dataset{
			Subjects: []ingest.SubjectRow{{Name: "Silicon", Category: "Semiconductors"}},
		}
		cls := reconcile.Classify(b, d)

		merged, err := reconcile.Apply(b, d, cls, map[string]reconcile.Resolution{
			"Silicon": {Choice: reconcile.UseNew, TargetCategory: "Wafers"},
		})
		require.NoError(t, err)

		_, cat, ok := merged.Subject("Silicon")
		require.True(t, ok)
		assert.Equal(t, "Wafers", cat.Name)
	})

	t.Run("incoming subject versus board exclude term", func(t *testing.T) {
		b := seedBoard(t)
		d := &ingest.Dataset{
			Subjects:      []ingest.SubjectRow{{Name: "Scam", Category: "Materials"}},
			Subcategories: []string{"Materials"},
		}
		cls := reconcile.Classify(b, d)
		require.True(t, cls.HasConflicts())

		t.Run("keep_existing drops the subject", func(t *testing.T) {
			merged, err := reconcile.Apply(b, d, cls, map[string]reconcile.Resolution{
				"Scam": {Choice: reconcile.KeepExisting},
			})
			require.NoError(t, err)
			_, _, ok := merged.Subject("Scam")
			assert.False(t, ok)
			_, ok = merged.Term("Scam", board.Exclude)
			assert.True(t, ok)
		})

		t.Run("use_new removes the term and inserts", func(t *testing.T) {
			merged, err := reconcile.Apply(b, d, cls, map[string]reconcile.Resolution{
				"Scam": {Choice: reconcile.UseNew},
			})
			require.NoError(t, err)
			_, cat, ok := merged.Subject("Scam")
			require.True(t, ok)
			assert.Equal(t, "Materials", cat.Name)
			_, ok = merged.Term("Scam", board.Exclude)
			assert.False(t, ok)
		})
	})

	t.Run("incoming exclude term versus board subject", func(t *testing.T) {
		b := seedBoard(t)
		d := &ingest.Dataset{
			ExcludeTerms: []string{"Silicon"},
		}
		cls := reconcile.Classify(b, d)
		require.True(t, cls.HasConflicts())

		t.Run("keep_existing drops the term", func(t *testing.T) {
			merged, err := reconcile.Apply(b, d, cls, map[string]reconcile.Resolution{
				"Silicon": {Choice: reconcile.KeepExisting},
			})
			require.NoError(t, err)
			_, _, ok := merged.Subject("Silicon")
			assert.True(t, ok)
			_, ok = merged.Term("Silicon", board.Exclude)
			assert.False(t, ok)
		})

		t.Run("use_new removes the subject and lands the term", func(t *testing.T) {
			merged, err := reconcile.Apply(b, d, cls, map[string]reconcile.Resolution{
				"Silicon": {Choice: reconcile.UseNew},
			})
			require.NoError(t, err)
			_, _, ok := merged.Subject("Silicon")
			assert.False(t, ok)
			term, ok := merged.Term("Silicon", board.Exclude)
			require.True(t, ok)
			assert.Equal(t, board.SourceCSV, term.Source)
		})
	})

	t.Run("undefined choice is rejected before anything runs", func(t *testing.T) {
		b := seedBoard(t)
		d := &ingest.Dataset{
			Subjects:      []ingest.SubjectRow{{Name: "Scam", Category: "Materials"}},
			Subcategories: []string{"Materials"},
		}
		cls := reconcile.Classify(b, d)
		require.True(t, cls.HasConflicts())

		_, err := reconcile.Apply(b, d, cls, map[string]reconcile.Resolution{
			"Scam": {Choice: "keep-existing"},
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))

		_, ok := b.Term("Scam", board.Exclude)
		assert.True(t, ok, "a rejected resolution must not delete the exclude term")
	})

	t.Run("re-importing the same file changes nothing", func(t *testing.T) {
		b := seedBoard(t)
		d := &ingest.Dataset{
			Subjects:      []ingest.SubjectRow{{Name: "Aerogel", Category: "Foams"}},
			IncludeTerms:  []string{"Nanotube"},
			Subcategories: []string{"Foams"},
		}

		once, err := reconcile.Apply(b, d, reconcile.Classify(b, d), nil)
		require.NoError(t, err)
		twice, err := reconcile.Apply(once, d, reconcile.Classify(once, d), nil)
		require.NoError(t, err)

		assert.Len(t, twice.Subjects(), len(once.Subjects()))
		assert.Len(t, twice.Terms(), len(once.Terms()))
	})
}
