package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCounts(t *testing.T) {
	db := testDB(t)
	notebooks := seedCategory(t, db, "Notebooks", "notebooks")
	seedCategory(t, db, "Smartphones", "smartphones")

	seedNotebook(t, db, notebooks.ID, "first", 1000)
	seedNotebook(t, db, notebooks.ID, "second", 1200)

	counts, err := CategoryCounts(db, DefaultCountConfig())
	require.NoError(t, err)
	require.Len(t, counts, 2)

	byName := map[string]CategoryCount{}
	for _, entry := range counts {
		byName[entry.Name] = entry
	}

	assert.Equal(t, int64(2), byName["Notebooks"].Count)
	assert.Equal(t, "/category/notebooks/", byName["Notebooks"].URL)
	assert.Equal(t, int64(0), byName["Smartphones"].Count)
	assert.Equal(t, "/category/smartphones/", byName["Smartphones"].URL)
}

func TestCategoryCountsUnmappedCategory(t *testing.T) {
	db := testDB(t)
	gadgets := seedCategory(t, db, "Gadgets", "gadgets")
	seedNotebook(t, db, gadgets.ID, "widget-book", 500)

	// A category the config does not know about gets a zero count even
	// when products reference it.
	counts, err := CategoryCounts(db, DefaultCountConfig())
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, int64(0), counts[0].Count)
}

func TestCategoryCountsCustomConfig(t *testing.T) {
	db := testDB(t)
	audio := seedCategory(t, db, "Audio Gear", "audio-gear")
	seedHeadphones(t, db, audio.ID, "over-ear", 220)

	cfg := CountConfig{"Audio Gear": TypeHeadphones}
	counts, err := CategoryCounts(db, cfg)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, int64(1), counts[0].Count)
}

func TestCategoryBySlug(t *testing.T) {
	db := testDB(t)
	seedCategory(t, db, "Notebooks", "notebooks")

	category, err := CategoryBySlug(db, "notebooks")
	require.NoError(t, err)
	assert.Equal(t, "Notebooks", category.Name)

	_, err = CategoryBySlug(db, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
