package model

import (
	"html/template"
	"strconv"
	"strings"
	"unicode"
)

// HistoryRecord is a single dated entry in the family history timeline.
type HistoryRecord struct {
	Year    int
	Title   string
	Content template.HTML
	Link    string
	Photos  []*Photo
}

// IsLink reports whether the record points at an external link. Photos of
// link records are thumbnails for the link and never join the gallery.
func (r *HistoryRecord) IsLink() bool {
	return r.Link != ""
}

// Key is the stable identity of the record, used for anchors and list keys.
func (r *HistoryRecord) Key() string {
	return strconv.Itoa(r.Year) + "-" + Slug(r.Title)
}

// Photo is one picture attached to a record. ID is unique across the dataset.
type Photo struct {
	ID          string
	Title       string
	Description string
	Thumbnail   Image
	FullSize    Image
}

// Image is a responsive image descriptor.
type Image struct {
	Src         string
	SrcSet      string
	SrcWebp     string
	SrcSetWebp  string
	Sizes       string
	AspectRatio float64
}

// Person is a family contact listed in the contact dialog.
type Person struct {
	FirstName string
	FullName  string
	Email     string
	Link      string
	Order     int
}

// SiteData holds the content one build rendered.
type SiteData struct {
	Records []*HistoryRecord
	People  []*Person
	Photos  []*Photo
}

// Slug lowercases s and joins its letter and digit runs with dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
