package fetchgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBegin_CancelsPreviousGeneration(t *testing.T) {
	var tr Tracker
	first, g1 := tr.Begin(context.Background())
	second, g2 := tr.Begin(context.Background())

	assert.Equal(t, uint64(1), g1)
	assert.Equal(t, uint64(2), g2)
	require.ErrorIs(t, first.Err(), context.Canceled)
	assert.NoError(t, second.Err())
}

func TestCommit_DiscardsSupersededResults(t *testing.T) {
	var tr Tracker
	_, old := tr.Begin(context.Background())
	_, latest := tr.Begin(context.Background())

	applied := ""
	assert.False(t, tr.Commit(old, func() { applied = "old" }))
	assert.True(t, tr.Commit(latest, func() { applied = "latest" }))
	assert.Equal(t, "latest", applied)
}

func TestFinish_OnlyReleasesCurrent(t *testing.T) {
	var tr Tracker
	_, old := tr.Begin(context.Background())
	ctx, latest := tr.Begin(context.Background())

	tr.Finish(old)
	assert.NoError(t, ctx.Err())

	tr.Finish(latest)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Equal(t, latest, tr.Current())
}

func TestStop_InvalidatesInFlight(t *testing.T) {
	var tr Tracker
	ctx, gen := tr.Begin(context.Background())
	tr.Stop()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, tr.Commit(gen, func() {}))
}
