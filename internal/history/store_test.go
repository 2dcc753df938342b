package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/site"
)

func report(buildID string, started time.Time, outcome string) *site.BuildReport {
	return &site.BuildReport{
		BuildID:  buildID,
		Started:  started,
		Duration: 250 * time.Millisecond,
		Outcome:  outcome,
		Posts:    3,
		Pages:    6,
		Removed:  []string{"posts/old/index.html"},
	}
}

func TestStore_RecordAndRecent_NewestFirst(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, report("b1", base, "success")))
	require.NoError(t, store.Record(ctx, report("b2", base.Add(time.Hour), "warning")))
	require.NoError(t, store.Record(ctx, report("b3", base.Add(2*time.Hour), "success")))

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "b3", entries[0].BuildID)
	require.Equal(t, "b2", entries[1].BuildID)
	require.Equal(t, "warning", entries[1].Outcome)
	require.Equal(t, 1, entries[0].Removed)
}

func TestStore_Get_RoundTripsReport(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	in := report("b1", time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC), "success")
	require.NoError(t, store.Record(ctx, in))

	out, err := store.Get(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, in.BuildID, out.BuildID)
	require.Equal(t, in.Posts, out.Posts)
	require.Equal(t, in.Removed, out.Removed)
}

func TestStore_Get_UnknownBuild(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get(context.Background(), "nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(),
		report("b1", time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC), "success")))
	require.NoError(t, store.Close())

	store, err = NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "b1", entries[0].BuildID)
}
