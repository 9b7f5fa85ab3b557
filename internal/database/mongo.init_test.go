package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type indexedModel struct {
	Title     string `bson:"title" index:"unique"`
	Code      string `bson:"code,omitempty" index:"unique,sparse"`
	Score     int    `bson:"score" index:"single,order:-1"`
	Note      string `bson:"note" index:"text"`
	ExpiresAt int64  `bson:"expiresAt" index:"ttl:3600"`
	Lane      int    `bson:"lane" index:"compound:lane_shop_unique"`
	Shop      string `bson:"shop" index:"compound:lane_shop_unique"`
	Plain     string `bson:"plain"`
	Skipped   string `bson:"-" index:"unique"`
}

func TestParseIndexTag(t *testing.T) {
	got := parseIndexTag("unique,sparse;single,order:-1")
	assert.Equal(t, []map[string]string{
		{"unique": "", "sparse": ""},
		{"single": "", "order": "-1"},
	}, got)
	assert.Empty(t, parseIndexTag(""))
}

func TestIndexSpecs(t *testing.T) {
	specs, err := IndexSpecs(&indexedModel{})
	require.NoError(t, err)

	byName := map[string]IndexSpec{}
	for _, s := range specs {
		byName[s.Name] = s
	}
	require.Len(t, byName, 6)

	title := byName["title_unique"]
	assert.Equal(t, bson.D{{Key: "title", Value: 1}}, title.Keys)
	assert.True(t, *title.Options.Unique)
	assert.Nil(t, title.Options.Sparse)

	assert.True(t, *byName["code_unique"].Options.Sparse)
	assert.Equal(t, bson.D{{Key: "score", Value: -1}}, byName["score_single"].Keys)
	assert.Equal(t, bson.D{{Key: "note", Value: "text"}}, byName["note_text"].Keys)
	assert.EqualValues(t, 3600, *byName["expiresAt_ttl"].Options.ExpireAfterSeconds)

	compound := byName["lane_shop_unique"]
	assert.Equal(t, bson.D{{Key: "lane", Value: 1}, {Key: "shop", Value: 1}}, compound.Keys)
	assert.True(t, *compound.Options.Unique)
}

func TestIndexSpecs_InvalidTTL(t *testing.T) {
	type badTTL struct {
		At int64 `bson:"at" index:"ttl:soon"`
	}
	_, err := IndexSpecs(badTTL{})
	assert.Error(t, err)
}

func TestUniqueFields(t *testing.T) {
	assert.Equal(t, []string{"title", "code"}, UniqueFields(indexedModel{}))
	assert.Empty(t, UniqueFields(struct {
		A string `bson:"a"`
	}{}))
}

func TestCompareIndex(t *testing.T) {
	spec := IndexSpec{
		Name:    "title_unique",
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetName("title_unique").SetUnique(true),
	}

	assert.True(t, compareIndex(bson.M{"key": bson.M{"title": int32(1)}, "unique": true}, spec))
	assert.False(t, compareIndex(bson.M{"key": bson.M{"title": int32(1)}}, spec))
	assert.False(t, compareIndex(bson.M{"key": bson.M{"title": int32(-1)}, "unique": true}, spec))
	assert.False(t, compareIndex(bson.M{"key": bson.M{"name": int32(1)}, "unique": true}, spec))
	assert.False(t, compareIndex(bson.M{}, spec))

	ttl := IndexSpec{
		Name:    "at_ttl",
		Keys:    bson.D{{Key: "at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(60),
	}
	assert.True(t, compareIndex(bson.M{"key": bson.M{"at": int32(1)}, "expireAfterSeconds": int32(60)}, ttl))
	assert.False(t, compareIndex(bson.M{"key": bson.M{"at": int32(1)}, "expireAfterSeconds": int32(30)}, ttl))
}
