package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tigerkidtools/calc-engine/engine/store"
)

func TestPurgeScheduler_Purges(t *testing.T) {
	cache := store.NewMemory(0)
	require.NoError(t, cache.Put(context.Background(), "k", []byte("v")))

	ps := NewPurgeScheduler(cache, 10*time.Millisecond)
	ps.Start()
	defer ps.Stop()

	require.Eventually(t, func() bool {
		return ps.Runs() > 0 && cache.Len() == 0
	}, 2*time.Second, 5*time.Millisecond)
}

func TestPurgeScheduler_DisabledAndRestart(t *testing.T) {
	cache := store.NewMemory(0)

	idle := NewPurgeScheduler(cache, 0)
	idle.Start()
	idle.Stop()
	assert.Zero(t, idle.Runs())

	ps := NewPurgeScheduler(cache, 5*time.Millisecond)
	ps.Start()
	ps.Stop()
	ps.Start()
	require.Eventually(t, func() bool { return ps.Runs() > 0 }, 2*time.Second, 5*time.Millisecond)
	ps.Stop()
}
