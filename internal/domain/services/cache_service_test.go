package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
	"github.com/kavjeydev/notepod-sub000/internal/domain/services"
	"github.com/kavjeydev/notepod-sub000/internal/infrastructure/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (services.CacheService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return services.NewRedisCacheService(cache.NewRedisCacheWithClient(client), time.Hour), mr
}

func TestCacheDocumentRoundTrip(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()

	content := "# notes"
	doc := &entities.Document{
		ID:      "doc-1",
		Title:   "plans",
		OwnerID: "alice",
		Content: &content,
	}

	require.NoError(t, svc.SetDocument(ctx, doc))

	got, err := svc.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "plans", got.Title)
	require.NotNil(t, got.Content)
	assert.Equal(t, "# notes", *got.Content)
}

func TestCacheDocumentMiss(t *testing.T) {
	svc, _ := newTestCache(t)

	_, err := svc.GetDocument(context.Background(), "absent")
	assert.Error(t, err)
}

func TestInvalidateDocument(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.SetDocument(ctx, &entities.Document{ID: "doc-1"}))
	require.NoError(t, svc.InvalidateDocument(ctx, "doc-1"))

	_, err := svc.GetDocument(ctx, "doc-1")
	assert.Error(t, err)
}

func TestSidebarKey(t *testing.T) {
	svc, _ := newTestCache(t)

	assert.Equal(t, "sidebar:alice:root", svc.SidebarKey("alice", nil))

	parent := "folder-1"
	assert.Equal(t, "sidebar:alice:folder-1", svc.SidebarKey("alice", &parent))
}

func TestInvalidateSidebarDropsWholeOwner(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()

	parent := "folder-1"
	docs := []*entities.Document{{ID: "doc-1", OwnerID: "alice"}}

	require.NoError(t, svc.SetSidebar(ctx, svc.SidebarKey("alice", nil), docs))
	require.NoError(t, svc.SetSidebar(ctx, svc.SidebarKey("alice", &parent), docs))
	require.NoError(t, svc.SetSidebar(ctx, svc.SidebarKey("bob", nil), docs))

	require.NoError(t, svc.InvalidateSidebar(ctx, "alice"))

	_, err := svc.GetSidebar(ctx, svc.SidebarKey("alice", nil))
	assert.Error(t, err)
	_, err = svc.GetSidebar(ctx, svc.SidebarKey("alice", &parent))
	assert.Error(t, err)

	// other owners keep their entries
	got, err := svc.GetSidebar(ctx, svc.SidebarKey("bob", nil))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCacheEntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := services.NewRedisCacheService(cache.NewRedisCacheWithClient(client), time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.SetDocument(ctx, &entities.Document{ID: "doc-1"}))

	mr.FastForward(2 * time.Minute)

	_, err := svc.GetDocument(ctx, "doc-1")
	assert.Error(t, err)
}
