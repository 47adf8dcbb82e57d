package store

import (
	"context"
	"testing"
	"time"

	"github.com/rcliao/life-os/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRecords(t *testing.T) *Records {
	t.Helper()
	ctx := context.Background()
	r, _ := newTestRecords(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	seed := []model.Memory{
		{ID: "1", Timestamp: base, Content: "Go is a compiled language", Category: model.CategoryLearning,
			Metadata: model.Metadata{Tags: []string{"golang", "work"}}},
		{ID: "2", Timestamp: base.Add(time.Hour), Content: "Call mom on sunday", Category: model.CategoryRelationship,
			Metadata: model.Metadata{Intent: "family", Tags: []string{"family"}}},
		{ID: "3", Timestamp: base.Add(2 * time.Hour), Content: "Try a standing desk", Category: model.CategoryExperiment,
			Metadata: model.Metadata{Facts: []string{"back pain at work"}, Tags: []string{"Workspace"}}},
	}
	for _, m := range seed {
		require.NoError(t, r.AddMemory(ctx, m))
	}
	return r
}

func TestSearch_Query(t *testing.T) {
	r := seedRecords(t)

	res, err := r.Search(SearchParams{Query: "LANGUAGE"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "1", res[0].ID)

	// intent and facts are searched too
	res, _ = r.Search(SearchParams{Query: "family"})
	require.Len(t, res, 1)
	assert.Equal(t, "2", res[0].ID)

	res, _ = r.Search(SearchParams{Query: "back pain"})
	require.Len(t, res, 1)
	assert.Equal(t, "3", res[0].ID)
}

func TestSearch_CategoryAndTag(t *testing.T) {
	r := seedRecords(t)

	res, err := r.Search(SearchParams{Category: model.CategoryRelationship})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "2", res[0].ID)

	res, err = r.Search(SearchParams{TagPattern: "work*"})
	require.NoError(t, err)
	require.Len(t, res, 2)
	// newest first
	assert.Equal(t, "3", res[0].ID)
	assert.Equal(t, "1", res[1].ID)
}

func TestSearch_LimitAndEmpty(t *testing.T) {
	r := seedRecords(t)

	res, err := r.Search(SearchParams{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, err = r.Search(SearchParams{Query: "nothing matches this"})
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestSearch_InvalidPattern(t *testing.T) {
	r := seedRecords(t)
	_, err := r.Search(SearchParams{TagPattern: "[unterminated"})
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	r := seedRecords(t)
	m, err := r.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "Call mom on sunday", m.Content)

	_, err = r.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatsAndDistribution(t *testing.T) {
	ctx := context.Background()
	r := seedRecords(t)
	require.NoError(t, r.AddMemory(ctx, model.Memory{ID: "4", Timestamp: time.Now(), Content: "learn rust",
		Category: model.CategoryLearning, Metadata: model.Metadata{Tags: []string{"work"}}}))
	require.NoError(t, r.AddMessage(ctx, model.ChatMessage{ID: "m", Role: model.RoleSystem, Content: "answer", IsRetrieval: true}))

	st := r.Stats(DriverMemory, "")
	assert.Equal(t, 4, st.TotalMemories)
	assert.Equal(t, 1, st.TotalMessages)
	assert.Equal(t, 1, st.Retrievals)
	require.NotEmpty(t, st.Categories)
	assert.Equal(t, CategoryCount{Category: model.CategoryLearning, Count: 2}, st.Categories[0])
	require.NotEmpty(t, st.Tags)
	assert.Equal(t, TagCount{Tag: "work", Count: 2}, st.Tags[0])
}

func TestImportSkipsExisting(t *testing.T) {
	ctx := context.Background()
	r := seedRecords(t)
	exp := r.ExportAll()

	n, err := r.Import(ctx, exp.Memories)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	older := model.Memory{ID: "0", Timestamp: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Content: "old", Category: model.CategoryEvent}
	newer := model.Memory{ID: "9", Timestamp: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), Content: "new", Category: model.CategoryEvent}
	n, err = r.Import(ctx, []model.Memory{older, newer, {Content: "no id"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mems := r.Memories()
	require.Len(t, mems, 5)
	assert.Equal(t, "9", mems[0].ID)
	assert.Equal(t, "0", mems[len(mems)-1].ID)
}
