package audit

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RecordAndRecent(t *testing.T) {
	store := NewStore(10)
	first := store.Record("12", "triase.create", "pasien:1", map[string]interface{}{"level": "merah"})
	store.Record("12", "timer.start", "kunjungan:5", nil)

	_, err := uuid.Parse(first.ID)
	require.NoError(t, err)
	assert.False(t, first.Timestamp.IsZero())

	recent := store.Recent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, "timer.start", recent[0].Action)
	assert.Equal(t, "triase.create", recent[1].Action)

	assert.Len(t, store.Recent(1), 1)
	assert.Len(t, store.Recent(50), 2)
}

func TestStore_CapacityDropsOldest(t *testing.T) {
	store := NewStore(3)
	for i := 0; i < 5; i++ {
		store.Record("sistem", fmt.Sprintf("aksi-%d", i), "", nil)
	}

	assert.Equal(t, 3, store.Len())
	recent := store.Recent(0)
	assert.Equal(t, "aksi-4", recent[0].Action)
	assert.Equal(t, "aksi-2", recent[2].Action)
}

func TestStore_DefaultCapacity(t *testing.T) {
	store := NewStore(0)
	assert.Equal(t, DefaultCapacity, store.capacity)
}

func TestStore_ConcurrentRecord(t *testing.T) {
	store := NewStore(100)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				store.Record("sistem", "timer.tick", "", nil)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, store.Len())
}
