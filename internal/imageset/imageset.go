// Package imageset builds responsive image descriptors for photos served
// from an image host that resizes on request.
package imageset

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Bitlatte/areyou/internal/model"
)

const (
	ThumbnailWidth = 600
	FullSizeWidth  = 1920
)

// srcSet widths are multiples of the max width, as fluid images use.
var densities = []float64{0.25, 0.5, 1, 1.5, 2}

// Builder resolves image files against BaseURL.
type Builder struct {
	BaseURL string
}

// Fluid returns the descriptor of file rendered at most maxWidth wide.
// originalWidth caps the srcSet when known (> 0). height is used for the
// aspect ratio when both dimensions are known.
func (b Builder) Fluid(file string, maxWidth, originalWidth, originalHeight int) model.Image {
	if file == "" {
		return model.Image{}
	}
	width := maxWidth
	if originalWidth > 0 && originalWidth < width {
		width = originalWidth
	}
	var widths []int
	for _, d := range densities {
		w := int(float64(maxWidth) * d)
		if originalWidth > 0 && w > originalWidth {
			continue
		}
		widths = append(widths, w)
	}
	// A capped set ends with the original itself.
	if originalWidth > 0 && originalWidth < maxWidth*2 && (len(widths) == 0 || widths[len(widths)-1] != originalWidth) {
		widths = append(widths, originalWidth)
	}

	img := model.Image{
		Src:        b.url(file, width, ""),
		SrcSet:     b.srcSet(file, widths, ""),
		SrcWebp:    b.url(file, width, "webp"),
		SrcSetWebp: b.srcSet(file, widths, "webp"),
		Sizes:      fmt.Sprintf("(max-width: %dpx) 100vw, %dpx", width, width),
	}
	if originalWidth > 0 && originalHeight > 0 {
		img.AspectRatio = float64(originalWidth) / float64(originalHeight)
	}
	return img
}

func (b Builder) srcSet(file string, widths []int, format string) string {
	parts := make([]string, 0, len(widths))
	for _, w := range widths {
		parts = append(parts, b.url(file, w, format)+" "+strconv.Itoa(w)+"w")
	}
	return strings.Join(parts, ",\n")
}

func (b Builder) url(file string, width int, format string) string {
	q := url.Values{}
	q.Set("w", strconv.Itoa(width))
	if format != "" {
		q.Set("fm", format)
	}
	if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") {
		return file + "?" + q.Encode()
	}
	return strings.TrimSuffix(b.BaseURL, "/") + "/" + strings.TrimPrefix(file, "/") + "?" + q.Encode()
}
