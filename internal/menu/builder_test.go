package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquorhole/internal/domain"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func item(id int64, parent *int64, name, url string) domain.MenuItem {
	return domain.MenuItem{ID: id, Name: name, URL: url, ParentID: parent}
}

func TestBuildLinksChildrenAndDemotesOrphans(t *testing.T) {
	roots := Build([]domain.MenuItem{
		item(1, nil, "Spirits", "/collections/spirits"),
		item(2, int64Ptr(1), "Whisky", "/collections/whisky"),
		item(3, int64Ptr(2), "Single Malt", "/collections/single-malt"),
		item(4, int64Ptr(99), "Orphan", "/collections/orphan"),
	})

	require.Len(t, roots, 2)
	assert.Equal(t, int64(1), roots[0].ID)
	assert.Equal(t, int64(4), roots[1].ID)
	require.Len(t, roots[0].Children, 1)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, int64(3), roots[0].Children[0].Children[0].ID)
	assert.Empty(t, roots[1].Children)
}

func TestBuildPreservesSourceOrder(t *testing.T) {
	roots := Build([]domain.MenuItem{
		item(10, nil, "A", "/a"),
		item(11, int64Ptr(10), "A1", "/a/1"),
		item(12, int64Ptr(10), "A2", "/a/2"),
		item(13, nil, "B", "/b"),
	})

	require.Len(t, roots, 2)
	assert.Equal(t, int64(10), roots[0].ID)
	assert.Equal(t, int64(13), roots[1].ID)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, int64(11), roots[0].Children[0].ID)
	assert.Equal(t, int64(12), roots[0].Children[1].ID)
}

func TestBuildSelfParentBecomesRoot(t *testing.T) {
	roots := Build([]domain.MenuItem{
		item(1, int64Ptr(1), "Loop", "/loop"),
	})

	require.Len(t, roots, 1)
	assert.Equal(t, int64(1), roots[0].ID)
	assert.Empty(t, roots[0].Children)
}

func TestBuildMutualCycleTerminates(t *testing.T) {
	roots := Build([]domain.MenuItem{
		item(1, int64Ptr(2), "A", "/a"),
		item(2, int64Ptr(1), "B", "/b"),
		item(3, int64Ptr(1), "C", "/c"),
	})

	// Both cycle members are demoted to roots, as is the node hanging off
	// the cycle; nothing is lost and nothing loops.
	require.Len(t, roots, 3)
	for _, r := range roots {
		assert.NotNil(t, r)
	}
}

func TestCollectDescendantIDsPreOrder(t *testing.T) {
	roots := Build([]domain.MenuItem{
		item(1, nil, "Spirits", "/collections/spirits"),
		item(2, int64Ptr(1), "Whisky", "/collections/whisky"),
		item(3, int64Ptr(2), "Single Malt", "/collections/single-malt"),
		item(4, int64Ptr(1), "Gin", "/collections/gin"),
	})

	require.Len(t, roots, 1)
	assert.Equal(t, []int64{1, 2, 3, 4}, CollectDescendantIDs(roots[0]))
	assert.Nil(t, CollectDescendantIDs(nil))
}

func TestResolveNodeByURLNormalizes(t *testing.T) {
	roots := Build([]domain.MenuItem{
		item(1, nil, "Spirits", "/collections/spirits"),
		item(2, int64Ptr(1), "Whisky", "/collections/Whisky/"),
	})

	got := ResolveNodeByURL(roots, "/collections/whisky")
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
}

func TestResolveNodeByURLSuffixMatch(t *testing.T) {
	roots := Build([]domain.MenuItem{
		item(1, nil, "Wine", "https://shop.example.com/collections/wine"),
	})

	got := ResolveNodeByURL(roots, "/collections/wine")
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestResolveNodeByURLNotFound(t *testing.T) {
	roots := Build([]domain.MenuItem{
		item(1, nil, "Wine", "/collections/wine"),
	})

	assert.Nil(t, ResolveNodeByURL(roots, "/collections/beer"))
	assert.Nil(t, ResolveNodeByURL(roots, ""))
}

func TestResolveNodeByName(t *testing.T) {
	roots := Build([]domain.MenuItem{
		item(1, nil, "Spirits", "/collections/spirits"),
		item(2, int64Ptr(1), "Whisky", "/collections/whisky"),
	})

	got := ResolveNodeByName(roots, "whisky")
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
	assert.Nil(t, ResolveNodeByName(roots, "vodka"))
}
