package basesvc

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quickart/internal/common"
)

type testBox struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Code  int                `bson:"id"`
	Title string             `bson:"title" index:"unique"`
	Range []int              `bson:"range"`
	Tags  []testTag          `bson:"tags"`
}

type testTag struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func newTestStore() *BaseServiceMemoryImpl[testBox] {
	return NewBaseServiceMemory[testBox]("Box")
}

func TestMemory_InsertOneAssignsIDAndReturnsStoredCopy(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	created, err := store.InsertOne(ctx, testBox{Code: 7, Title: "A", Range: []int{0, 2}})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, 7, created.Code)
	assert.Equal(t, []int{0, 2}, created.Range)
	assert.Equal(t, "Box", store.Name())

	found, err := store.FindOneById(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	// Sửa bản sao trả về không ảnh hưởng dữ liệu đã lưu
	found.Range[0] = 99
	again, err := store.FindOneById(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Range[0])
}

func TestMemory_KeepsExplicitID(t *testing.T) {
	store := newTestStore()
	id := primitive.NewObjectID()

	created, err := store.InsertOne(context.Background(), testBox{ID: id, Title: "A"})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)

	_, err = store.InsertOne(context.Background(), testBox{ID: id, Title: "B"})
	assert.True(t, common.IsDuplicate(err))
}

func TestMemory_UniqueIndexFromTag(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.InsertOne(ctx, testBox{Title: "Main Store"})
	require.NoError(t, err)

	_, err = store.InsertOne(ctx, testBox{Title: "Main Store", Code: 2})
	require.Error(t, err)
	assert.True(t, common.IsDuplicate(err))
	var custom *common.Error
	require.True(t, errors.As(err, &custom))
	assert.Equal(t, common.StatusConflict, custom.StatusCode)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemory_FindOneNotFound(t *testing.T) {
	store := newTestStore()

	_, err := store.FindOne(context.Background(), bson.M{"title": "missing"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.FindOneById(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemory_FindFilters(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	for i, title := range []string{"A", "B", "C"} {
		_, err := store.InsertOne(ctx, testBox{Code: i % 2, Title: title, Tags: []testTag{{Name: title + "-tag"}}})
		require.NoError(t, err)
	}

	zeros, err := store.Find(ctx, bson.M{"id": 0})
	require.NoError(t, err)
	require.Len(t, zeros, 2)
	assert.Equal(t, "A", zeros[0].Title)
	assert.Equal(t, "C", zeros[1].Title)

	// Số so sánh theo giá trị, không theo kiểu
	ones, err := store.Find(ctx, bson.D{{Key: "id", Value: int64(1)}})
	require.NoError(t, err)
	require.Len(t, ones, 1)
	assert.Equal(t, "B", ones[0].Title)

	nested, err := store.FindOne(ctx, map[string]interface{}{"tags.0.name": "C-tag"})
	require.NoError(t, err)
	assert.Equal(t, "C", nested.Title)

	none, err := store.Find(ctx, bson.M{"title": "Z"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	exists, err := store.DocumentExists(ctx, bson.M{"title": "B"})
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = store.DocumentExists(ctx, bson.M{"title": "b"})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemory_RejectsOperators(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.Find(ctx, bson.M{"$or": bson.A{}})
	var custom *common.Error
	require.True(t, errors.As(err, &custom))
	assert.Equal(t, common.ErrCodeValidationInput, custom.Code)

	_, err = store.Find(ctx, bson.M{"id": bson.M{"$gt": 1}})
	assert.Error(t, err)

	_, err = store.Find(ctx, "title=A")
	assert.Error(t, err)
}

func TestMemory_CanceledContext(t *testing.T) {
	store := newTestStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.InsertOne(ctx, testBox{Title: "A"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemory_ConcurrentUniqueInsert(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.InsertOne(ctx, testBox{Title: "same"}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}
