package variants

import "sort"

// Rerank sorts images by their current order and assigns dense 0-based ranks.
// Reordering is always a full re-rank, never a gap-based scheme.
func Rerank(images []ProductImage) []ProductImage {
	out := make([]ProductImage, len(images))
	copy(out, images)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := range out {
		out[i].Order = i
	}
	return out
}

// MoveImage moves the image with the given id to the target position and
// re-ranks. Out-of-range targets clamp; unknown ids are a no-op.
func MoveImage(images []ProductImage, id string, to int) []ProductImage {
	ordered := Rerank(images)

	from := -1
	for i, img := range ordered {
		if img.ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return ordered
	}
	if to < 0 {
		to = 0
	}
	if to >= len(ordered) {
		to = len(ordered) - 1
	}

	img := ordered[from]
	ordered = append(ordered[:from], ordered[from+1:]...)
	ordered = append(ordered[:to], append([]ProductImage{img}, ordered[to:]...)...)
	for i := range ordered {
		ordered[i].Order = i
	}
	return ordered
}

// RemoveImage deletes the image with the given id and re-ranks the remainder.
func RemoveImage(images []ProductImage, id string) []ProductImage {
	kept := make([]ProductImage, 0, len(images))
	for _, img := range images {
		if img.ID != id {
			kept = append(kept, img)
		}
	}
	return Rerank(kept)
}

// PruneSelectedImages drops from every variation the image ids that are no
// longer present in the gallery, so deletions never leave dangling
// references on variations.
func PruneSelectedImages(vars []*Variation, images []ProductImage) {
	present := make(map[string]bool, len(images))
	for _, img := range images {
		present[img.ID] = true
	}
	for _, v := range vars {
		kept := v.SelectedImages[:0]
		for _, id := range v.SelectedImages {
			if present[id] {
				kept = append(kept, id)
			}
		}
		v.SelectedImages = kept
	}
}
