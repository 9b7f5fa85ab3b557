package cache

import (
	"context"
	"testing"
	"time"

	"quickart/internal/metrics"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type cachedDoc struct {
	ID    primitive.ObjectID `bson:"_id"`
	Title string             `bson:"title"`
	Width int                `bson:"width"`
}

func setupTestCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *Cache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, New(client, "map:", ttl, metrics.New())
}

func TestCache_SetThenGet(t *testing.T) {
	mr, c := setupTestCache(t, time.Minute)
	ctx := context.Background()

	doc := cachedDoc{ID: primitive.NewObjectID(), Title: "Main", Width: 10}
	require.NoError(t, c.Set(ctx, doc.ID.Hex(), doc))
	assert.True(t, mr.Exists("map:"+doc.ID.Hex()))
	assert.Equal(t, time.Minute, mr.TTL("map:"+doc.ID.Hex()))

	var got cachedDoc
	found, err := c.Get(ctx, doc.ID.Hex(), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc, got)
}

func TestCache_Miss(t *testing.T) {
	_, c := setupTestCache(t, time.Minute)

	var got cachedDoc
	found, err := c.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Expires(t *testing.T) {
	mr, c := setupTestCache(t, time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", cachedDoc{Title: "A"}))
	mr.FastForward(2 * time.Second)

	var got cachedDoc
	found, err := c.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_CorruptValue(t *testing.T) {
	mr, c := setupTestCache(t, time.Minute)
	require.NoError(t, mr.Set("map:bad", "not-bson"))

	var got cachedDoc
	found, err := c.Get(context.Background(), "bad", &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestCache_ServerDown(t *testing.T) {
	mr, c := setupTestCache(t, time.Minute)
	mr.Close()

	var got cachedDoc
	_, err := c.Get(context.Background(), "a", &got)
	assert.Error(t, err)
}

func TestCache_NilIsDisabled(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", cachedDoc{}))
	found, err := c.Get(ctx, "a", &cachedDoc{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	_ = client.Close()

	mr.Close()
	_, err = NewClient(context.Background(), mr.Addr(), "", 0)
	assert.Error(t, err)
}
