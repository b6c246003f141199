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

func TestSession(t *testing.T) {
	t.Run("clean import completes in one call", func(t *testing.T) {
		b := seedBoard(t)
		s := reconcile.NewSession(b)

		res, err := s.Start([]ingest.Row{
			{"subject_name": "Aerogel", "subcategory_name": "Foams"},
			{"subject_name": "Nanotube", "subcategory_name": "_include"},
		})
		require.NoError(t, err)
		assert.Equal(t, reconcile.StateDone, res.State)
		require.NotNil(t, res.Merged)

		_, _, ok := res.Merged.Subject("Aerogel")
		assert.True(t, ok)
	})

	t.Run("walks both conflict stages in order", func(t *testing.T) {
		b := seedBoard(t)
		s := reconcile.NewSession(b)

		res, err := s.Start([]ingest.Row{
			{"subject_name": "Quantum", "subcategory_name": "Hardware"},
			{"subject_name": "Quantum", "subcategory_name": "Software"},
			{"subject_name": "Silicon", "subcategory_name": "Semiconductors"},
		})
		require.NoError(t, err)
		assert.Equal(t, reconcile.StateInternalConflicts, res.State)
		require.Len(t, res.Internal, 1)
		assert.Nil(t, res.Board, "stage two must not run with stage one open")

		res, err = s.ResolveInternal(map[string]string{"Quantum": "Hardware"})
		require.NoError(t, err)
		assert.Equal(t, reconcile.StateBoardConflicts, res.State)
		require.Len(t, res.Board, 1)
		assert.Equal(t, "Silicon", res.Board[0].Name)

		res, err = s.ResolveBoard(map[string]reconcile.Resolution{
			"Silicon": {Choice: reconcile.UseNew},
		})
		require.NoError(t, err)
		assert.Equal(t, reconcile.StateDone, res.State)

		_, cat, ok := res.Merged.Subject("Silicon")
		require.True(t, ok)
		assert.Equal(t, "Semiconductors", cat.Name)
		_, cat, ok = res.Merged.Subject("Quantum")
		require.True(t, ok)
		assert.Equal(t, "Hardware", cat.Name)
	})

	t.Run("resolutions may introduce new conflicts", func(t *testing.T) {
		b := board.New()
		s := reconcile.NewSession(b)

		res, err := s.Start([]ingest.Row{
			{"subject_name": "Battery", "subcategory_name": "_include"},
			{"subject_name": "Battery", "subcategory_name": "_exclude"},
			{"subject_name": "Charger", "subcategory_name": "Power"},
		})
		require.NoError(t, err)
		require.Equal(t, reconcile.StateInternalConflicts, res.State)

		// Moving Battery next to Charger is fine; moving it onto Charger's
		// exclude side would not be. Resolve it to a subject instead and the
		// session advances.
		res, err = s.ResolveInternal(map[string]string{"Battery": "Power"})
		require.NoError(t, err)
		assert.Equal(t, reconcile.StateDone, res.State)

		_, cat, ok := res.Merged.Subject("Battery")
		require.True(t, ok)
		assert.Equal(t, "Power", cat.Name)
	})

	t.Run("out of order calls are precondition errors", func(t *testing.T) {
		b := seedBoard(t)
		s := reconcile.NewSession(b)

		_, err := s.ResolveInternal(nil)
		assert.True(t, errors.IsInvalidState(err))
		_, err = s.ResolveBoard(nil)
		assert.True(t, errors.IsInvalidState(err))

		_, err = s.Start([]ingest.Row{{"subject_name": "Aerogel"}})
		require.NoError(t, err)
		_, err = s.Start([]ingest.Row{{"subject_name": "Aerogel"}})
		assert.True(t, errors.IsInvalidState(err), "sessions are single-use")
	})

	t.Run("cancel leaves the board untouched", func(t *testing.T) {
		b := seedBoard(t)
		before := len(b.Subjects())
		s := reconcile.NewSession(b)

		res, err := s.Start([]ingest.Row{
			{"subject_name": "Silicon", "subcategory_name": "Semiconductors"},
		})
		require.NoError(t, err)
		require.Equal(t, reconcile.StateBoardConflicts, res.State)

		require.NoError(t, s.Cancel())
		assert.Equal(t, reconcile.StateCanceled, s.State())
		assert.Len(t, b.Subjects(), before)

		_, err = s.ResolveBoard(nil)
		assert.True(t, errors.IsInvalidState(err), "canceled sessions stay canceled")
	})

	t.Run("reports progress while running", func(t *testing.T) {
		b := seedBoard(t)
		var percents []int
		s := reconcile.NewSession(b, reconcile.WithProgress(func(p reconcile.Progress) {
			percents = append(percents, p.Percent)
		}))

		_, err := s.Start([]ingest.Row{{"subject_name": "Aerogel"}})
		require.NoError(t, err)
		require.NotEmpty(t, percents)
		assert.Equal(t, 100, percents[len(percents)-1])
		assert.True(t, sortedAscending(percents))
	})
}

func sortedAscending(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return false
		}
	}
	return true
}
