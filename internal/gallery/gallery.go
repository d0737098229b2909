// Package gallery derives the photo gallery from the family history records.
package gallery

import "github.com/Bitlatte/areyou/internal/model"

// Flatten returns every photo of the non-link records, in record order and
// then photo order. Gallery positions index into this exact sequence.
func Flatten(records []*model.HistoryRecord) []*model.Photo {
	photos := []*model.Photo{}
	for _, r := range records {
		if r == nil || r.IsLink() {
			continue
		}
		for _, p := range r.Photos {
			if p != nil {
				photos = append(photos, p)
			}
		}
	}
	return photos
}

// Images maps photos to the lightbox image list using the full size rendition.
func Images(photos []*model.Photo) []model.LightboxImage {
	images := make([]model.LightboxImage, 0, len(photos))
	for _, p := range photos {
		images = append(images, model.LightboxImage{
			Src:     p.FullSize.Src,
			SrcSet:  p.FullSize.SrcSet,
			Caption: p.Description,
			Alt:     p.Title,
		})
	}
	return images
}

// InRange reports whether i addresses one of n gallery images.
func InRange(n, i int) bool {
	return i >= 0 && i < n
}

// Clamp bounds i to [0, n-1]. It returns -1 when there are no images.
func Clamp(n, i int) int {
	switch {
	case n == 0:
		return -1
	case i < 0:
		return 0
	case i >= n:
		return n - 1
	}
	return i
}

// View builds the lightbox props. The index is passed through untouched;
// only the displayed image is clamped, so an out-of-range index shows the
// nearest image instead of failing.
func View(images []model.LightboxImage, isOpen bool, current int) model.LightboxView {
	v := model.LightboxView{
		Images:       images,
		IsOpen:       isOpen,
		CurrentImage: current,
	}
	if shown := Clamp(len(images), current); shown >= 0 {
		v.Current = &images[shown]
		v.Position = shown + 1
	}
	return v
}
