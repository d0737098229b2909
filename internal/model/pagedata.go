package model

import "html/template"

// PageData is the view model handed to the family history layout.
type PageData struct {
	SiteTitle   string
	PageTitle   string
	Description string
	Intro       string
	BaseURL     string
	Canonical   string
	Params      map[string]interface{}

	ContactHref string
	Contact     ContactView
	Lightbox    LightboxView
	Records     []RecordView
}

// ContactView carries the contact dialog props.
type ContactView struct {
	Open      bool
	CloseHref string
	People    []*Person
}

// RecordView carries the per-record display props.
type RecordView struct {
	Key     string
	Year    int
	Title   string
	Content template.HTML
	Link    string
	IsEven  bool
	Photos  []PhotoLink
}

// PhotoLink is a record thumbnail and the href that opens it in the gallery.
type PhotoLink struct {
	Photo *Photo
	Href  string
}

// LightboxImage is one entry of the gallery image list.
type LightboxImage struct {
	Src     string `json:"src"`
	SrcSet  string `json:"srcSet"`
	Caption string `json:"caption"`
	Alt     string `json:"alt"`
}

// LightboxView carries the gallery widget props plus the navigation targets.
type LightboxView struct {
	Images       []LightboxImage
	IsOpen       bool
	CurrentImage int
	Current      *LightboxImage
	Position     int
	PrevHref     string
	NextHref     string
	CloseHref    string
}
