package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMoveImage covers the canonical case: dragging b before a in
// [{a,0},{b,1}] yields [{b,0},{a,1}].
func TestMoveImage(t *testing.T) {
	images := []ProductImage{
		{ID: "a", Order: 0},
		{ID: "b", Order: 1},
	}

	out := MoveImage(images, "b", 0)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, 0, out[0].Order)
	assert.Equal(t, "a", out[1].ID)
	assert.Equal(t, 1, out[1].Order)
}

func TestMoveImageClampsAndIgnoresUnknown(t *testing.T) {
	images := []ProductImage{
		{ID: "a", Order: 0},
		{ID: "b", Order: 1},
		{ID: "c", Order: 2},
	}

	out := MoveImage(images, "a", 99)
	assert.Equal(t, "a", out[2].ID, "target clamps to last position")

	out = MoveImage(images, "missing", 0)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].ID)
}

// TestRemoveImageReranks verifies the dense re-rank after deletion; no gaps.
func TestRemoveImageReranks(t *testing.T) {
	images := []ProductImage{
		{ID: "a", Order: 0},
		{ID: "b", Order: 1},
		{ID: "c", Order: 2},
	}

	out := RemoveImage(images, "b")
	require.Len(t, out, 2)
	assert.Equal(t, []int{0, 1}, []int{out[0].Order, out[1].Order})
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)
}

// TestPruneSelectedImages verifies that variations only retain image ids
// still present in the gallery after a deletion.
func TestPruneSelectedImages(t *testing.T) {
	vars := []*Variation{
		{ID: "tmp_a", SelectedImages: []string{"a", "b"}},
		{ID: "tmp_b", SelectedImages: []string{"b"}},
		{ID: "tmp_c"},
	}
	images := []ProductImage{{ID: "a", Order: 0}}

	PruneSelectedImages(vars, images)

	assert.Equal(t, []string{"a"}, vars[0].SelectedImages)
	assert.Empty(t, vars[1].SelectedImages)
	assert.Empty(t, vars[2].SelectedImages)
}

func TestRerankNormalizesSparseOrders(t *testing.T) {
	images := []ProductImage{
		{ID: "x", Order: 7},
		{ID: "y", Order: 2},
		{ID: "z", Order: 11},
	}

	out := Rerank(images)
	assert.Equal(t, "y", out[0].ID)
	assert.Equal(t, "x", out[1].ID)
	assert.Equal(t, "z", out[2].ID)
	for i, img := range out {
		assert.Equal(t, i, img.Order)
	}
}
