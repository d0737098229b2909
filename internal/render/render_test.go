package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bitlatte/areyou/internal/model"
)

func sampleData() model.PageData {
	photo := &model.Photo{
		ID:        "p1",
		Title:     "Farmhouse",
		Thumbnail: model.Image{Src: "/images/farm.jpg?w=600", SrcSet: "/images/farm.jpg?w=600 600w"},
	}
	return model.PageData{
		SiteTitle:   "DiLoreto Family",
		PageTitle:   "Are You a DiLoreto?",
		Description: "History of the DiLoretos",
		Intro:       "We would love to hear from you.",
		ContactHref: "/areyou/contact/",
		Contact: model.ContactView{
			CloseHref: "/areyou/",
			People:    []*model.Person{{FirstName: "Joe", FullName: "Joe DiLoreto", Email: "joe@example.com"}},
		},
		Lightbox: model.LightboxView{
			Images:    []model.LightboxImage{{Src: "/images/farm.jpg?w=1920", Alt: "Farmhouse", Caption: "Spring"}},
			CloseHref: "/areyou/",
		},
		Records: []model.RecordView{
			{Key: "1900-emigration", Year: 1900, Title: "Emigration", Link: "https://example.com", IsEven: true},
			{Key: "1910-the-farm", Year: 1910, Title: "The Farm", Content: "<p>Farm years</p>",
				Photos: []model.PhotoLink{{Photo: photo, Href: "/areyou/gallery/0/"}}},
		},
	}
}

func TestRenderer_Page_Closed(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Page(&buf, sampleData()); err != nil {
		t.Fatalf("Page: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>Are You a DiLoreto?</title>",
		`href="/areyou/contact/"`,
		`id="1900-emigration" class="record record-even"`,
		`id="1910-the-farm" class="record record-odd"`,
		`<a href="https://example.com">Emigration</a>`,
		"<p>Farm years</p>",
		`href="/areyou/gallery/0/"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{`class="modal"`, `class="lightbox"`} {
		if strings.Contains(out, unwanted) {
			t.Fatalf("closed page contains %q", unwanted)
		}
	}
}

func TestRenderer_Page_Overlays(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := sampleData()
	data.Contact.Open = true
	data.Lightbox.IsOpen = true
	data.Lightbox.Current = &data.Lightbox.Images[0]
	data.Lightbox.Position = 1
	data.Lightbox.NextHref = "/areyou/gallery/1/"

	var buf bytes.Buffer
	if err := r.Page(&buf, data); err != nil {
		t.Fatalf("Page: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`class="modal"`,
		"mailto:joe@example.com",
		`class="lightbox"`,
		"1 of 1",
		`class="lightbox-next" href="/areyou/gallery/1/"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "lightbox-prev") {
		t.Fatal("prev affordance rendered without a target")
	}
}

func TestRenderer_Page_Params(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := sampleData()
	var buf bytes.Buffer
	if err := r.Page(&buf, data); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if strings.Contains(buf.String(), "site-footer") {
		t.Fatal("footer rendered without params")
	}

	data.Params = map[string]interface{}{"origin": "Alfadena, Italy"}
	buf.Reset()
	if err := r.Page(&buf, data); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(buf.String(), "<dt>origin</dt><dd>Alfadena, Italy</dd>") {
		t.Fatalf("params not rendered:\n%s", buf.String())
	}
}

func TestNew_Override(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "partials"), 0o755); err != nil {
		t.Fatal(err)
	}
	override := `{{define "record"}}<li class="custom">{{.Title}}</li>{{end}}`
	if err := os.WriteFile(filepath.Join(dir, "partials", "record.html"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Page(&buf, sampleData()); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(buf.String(), `<li class="custom">The Farm</li>`) {
		t.Fatalf("override not used:\n%s", buf.String())
	}
}

func TestNew_BrokenOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "areyou.html"), []byte(`{{define "content"}}{{.Nope`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(dir); err == nil {
		t.Fatal("expected parse error")
	}
}
