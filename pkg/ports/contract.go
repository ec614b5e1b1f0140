package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/calcgate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunJournalContract runs a suite of tests to verify that a Journal implementation
// adheres to the defined interface contract. The journal must start empty and
// hold at least five records.
func RunJournalContract(t *testing.T, journal Journal) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Empty", func(t *testing.T) {
		recs, err := journal.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("Append and Recent", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			rec := domain.Record{
				ID:         fmt.Sprintf("rec-%d", i),
				Expression: fmt.Sprintf("%d + 1", i),
				Outcome:    domain.Success(float64(i + 1)),
				CreatedAt:  base.Add(time.Duration(i) * time.Second),
			}
			require.NoError(t, journal.Append(ctx, rec), "Append should not return error")
		}

		recs, err := journal.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, recs, 3)

		// Newest first
		assert.Equal(t, "rec-2", recs[0].ID)
		assert.Equal(t, "rec-0", recs[2].ID)
		require.True(t, recs[0].Outcome.OK())
		assert.Equal(t, 3.0, *recs[0].Outcome.Result)
	})

	t.Run("Limit", func(t *testing.T) {
		recs, err := journal.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "rec-2", recs[0].ID)
		assert.Equal(t, "rec-1", recs[1].ID)
	})

	t.Run("Invalid Outcome Round Trip", func(t *testing.T) {
		rec := domain.Record{
			ID:         "rec-invalid",
			Expression: "2 +",
			Outcome:    domain.Invalid(),
			ExitCode:   1,
			CreatedAt:  base.Add(time.Minute),
		}
		require.NoError(t, journal.Append(ctx, rec))

		recs, err := journal.Recent(ctx, 1)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.False(t, recs[0].Outcome.OK())
		assert.Equal(t, domain.InvalidExpression, recs[0].Outcome.Error)
		assert.Equal(t, 1, recs[0].ExitCode)
	})
}
