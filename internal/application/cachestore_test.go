package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/devfolio/internal/application"
	"github.com/ericfisherdev/devfolio/internal/domain/model"
)

func sampleProfile() model.Profile {
	return model.Profile{
		Login:     "octocat",
		Name:      "The Octocat",
		Bio:       "Mascot <3",
		AvatarURL: "https://avatars.githubusercontent.com/u/583231?v=4",
		HTMLURL:   "https://github.com/octocat",
	}
}

func sampleRepos() []model.RepositoryEntry {
	return []model.RepositoryEntry{
		{Name: "hello-world", HTMLURL: "https://github.com/octocat/hello-world", Description: "My first repo", Language: "Go", Stars: 12, PushedAt: "2026-02-01T10:00:00Z"},
		{Name: "spoon-knife", HTMLURL: "https://github.com/octocat/spoon-knife", Stars: 3},
	}
}

func TestCacheStore_Key(t *testing.T) {
	assert.Equal(t, "githubData_octocat", application.Key("octocat"))
}

func TestCacheStore_WriteThenRead_RoundTrip(t *testing.T) {
	kv := newMockKVStore()
	clock := newFakeClock()
	store := application.NewCacheStore(kv, application.SchemaVersion, application.DefaultCacheTTL, clock.Now, discardLogger())
	ctx := context.Background()

	store.Write(ctx, "octocat", sampleProfile(), sampleRepos())
	clock.Advance(time.Hour)

	got, ok := store.Read(ctx, "octocat")
	require.True(t, ok)
	require.NotNil(t, got)

	assert.Equal(t, sampleProfile(), got.Profile)
	assert.Equal(t, sampleRepos(), got.Repos)
	assert.Equal(t, application.SchemaVersion, got.SchemaVersion)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli(), got.Timestamp)
	assert.True(t, store.IsFresh(got))
}

func TestCacheStore_WriteUsesDocumentedLayout(t *testing.T) {
	kv := newMockKVStore()
	clock := newFakeClock()
	store := application.NewCacheStore(kv, application.SchemaVersion, 0, clock.Now, discardLogger())

	store.Write(context.Background(), "octocat", sampleProfile(), sampleRepos())

	raw, ok := kv.snapshot()["githubData_octocat"]
	require.True(t, ok)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "profile")
	assert.Contains(t, doc, "repos")
	assert.Contains(t, doc, "timestamp")
	assert.JSONEq(t, `"v5"`, string(doc["schemaVersion"]))
}

func TestCacheStore_Read_Missing(t *testing.T) {
	store := application.NewCacheStore(newMockKVStore(), application.SchemaVersion, 0, nil, discardLogger())

	got, ok := store.Read(context.Background(), "nobody")

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCacheStore_Read_SchemaVersionMismatch(t *testing.T) {
	kv := newMockKVStore()
	clock := newFakeClock()
	old := application.NewCacheStore(kv, "v4", 0, clock.Now, discardLogger())
	old.Write(context.Background(), "octocat", sampleProfile(), sampleRepos())

	current := application.NewCacheStore(kv, application.SchemaVersion, 0, clock.Now, discardLogger())
	got, ok := current.Read(context.Background(), "octocat")

	assert.False(t, ok, "a snapshot with another schema version must read as absent")
	assert.Nil(t, got)
}

func TestCacheStore_Read_CorruptValue(t *testing.T) {
	kv := newMockKVStore()
	kv.data[application.Key("octocat")] = []byte("{not json")
	store := application.NewCacheStore(kv, application.SchemaVersion, 0, nil, discardLogger())

	got, ok := store.Read(context.Background(), "octocat")

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCacheStore_Read_StoreErrorIsMiss(t *testing.T) {
	kv := newMockKVStore()
	kv.getErr = errors.New("disk I/O error")
	store := application.NewCacheStore(kv, application.SchemaVersion, 0, nil, discardLogger())

	got, ok := store.Read(context.Background(), "octocat")

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCacheStore_Write_RejectedIsIgnored(t *testing.T) {
	kv := newMockKVStore()
	kv.setErr = errors.New("quota exceeded")
	store := application.NewCacheStore(kv, application.SchemaVersion, 0, nil, discardLogger())

	assert.NotPanics(t, func() {
		store.Write(context.Background(), "octocat", sampleProfile(), sampleRepos())
	})
	assert.Empty(t, kv.snapshot())
}

func TestCacheStore_IsFresh_Boundary(t *testing.T) {
	kv := newMockKVStore()
	clock := newFakeClock()
	store := application.NewCacheStore(kv, application.SchemaVersion, 24*time.Hour, clock.Now, discardLogger())
	ctx := context.Background()

	store.Write(ctx, "octocat", sampleProfile(), nil)
	snap, ok := store.Read(ctx, "octocat")
	require.True(t, ok)

	clock.Advance(24*time.Hour - time.Millisecond)
	assert.True(t, store.IsFresh(snap), "one millisecond before the TTL is fresh")

	clock.Advance(time.Millisecond)
	assert.False(t, store.IsFresh(snap), "exactly the TTL is stale")

	clock.Advance(48 * time.Hour)
	stale, ok := store.Read(ctx, "octocat")
	require.True(t, ok, "stale snapshots are still readable")
	assert.False(t, store.IsFresh(stale))
	assert.NotNil(t, stale.Repos)
}

func TestCacheStore_IsFresh_Nil(t *testing.T) {
	store := application.NewCacheStore(newMockKVStore(), application.SchemaVersion, 0, nil, discardLogger())
	assert.False(t, store.IsFresh(nil))
}
