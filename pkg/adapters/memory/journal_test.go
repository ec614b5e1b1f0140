package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/calcgate/pkg/adapters/memory"
	"github.com/aretw0/calcgate/pkg/domain"
	"github.com/aretw0/calcgate/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_Contract(t *testing.T) {
	ports.RunJournalContract(t, memory.NewJournal(10))
}

func TestJournal_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	j := memory.NewJournal(3)

	for i := 0; i < 5; i++ {
		require.NoError(t, j.Append(ctx, domain.Record{ID: fmt.Sprintf("r%d", i)}))
	}

	recs, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "r4", recs[0].ID)
	assert.Equal(t, "r3", recs[1].ID)
	assert.Equal(t, "r2", recs[2].ID)
}

func TestJournal_DefaultSize(t *testing.T) {
	ctx := context.Background()
	j := memory.NewJournal(0)

	for i := 0; i < memory.DefaultJournalSize+1; i++ {
		require.NoError(t, j.Append(ctx, domain.Record{ID: fmt.Sprintf("r%d", i)}))
	}

	recs, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recs, memory.DefaultJournalSize)
}

func TestJournal_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	j := memory.NewJournal(50)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = j.Append(ctx, domain.Record{ID: fmt.Sprintf("r%d", i)})
		}(i)
	}
	wg.Wait()

	recs, err := j.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, recs, 20)
}
