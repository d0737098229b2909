package page

import (
	"testing"

	"github.com/Bitlatte/areyou/internal/model"
)

func scenarioSnapshot() *Snapshot {
	return &Snapshot{
		Records: []*model.HistoryRecord{
			{Year: 1900, Title: "A", Link: "http://x"},
			{Year: 1910, Title: "B", Photos: []*model.Photo{{ID: "p1"}, {ID: "p2"}}},
		},
		People: []*model.Person{{FirstName: "Ann", Order: 1}},
	}
}

func TestController_OpenPhotoByID(t *testing.T) {
	c := NewController(scenarioSnapshot(), nil)

	if got := len(c.Photos()); got != 2 {
		t.Fatalf("len(Photos()) = %d, want 2", got)
	}
	c.OpenPhotoByID("p2")
	want := GalleryState{IsOpen: true, CurrentIndex: 1}
	if got := c.State().Gallery; got != want {
		t.Fatalf("Gallery = %+v, want %+v", got, want)
	}
}

func TestController_OpenPhotoByID_Unknown(t *testing.T) {
	c := NewController(&Snapshot{
		Records: []*model.HistoryRecord{{Year: 1920, Title: "C", Photos: []*model.Photo{}}},
	}, nil)

	if got := len(c.Photos()); got != 0 {
		t.Fatalf("len(Photos()) = %d, want 0", got)
	}
	c.OpenPhotoByID("anything")
	want := GalleryState{IsOpen: true, CurrentIndex: -1}
	if got := c.State().Gallery; got != want {
		t.Fatalf("Gallery = %+v, want %+v", got, want)
	}
}

func TestController_OpenPhotoByID_FirstMatchWins(t *testing.T) {
	c := NewController(&Snapshot{Records: []*model.HistoryRecord{
		{Year: 1, Photos: []*model.Photo{{ID: "a"}, {ID: "dup"}}},
		{Year: 2, Photos: []*model.Photo{{ID: "dup"}}},
	}}, nil)
	c.OpenPhotoByID("dup")
	if got := c.State().Gallery.CurrentIndex; got != 1 {
		t.Fatalf("CurrentIndex = %d, want 1", got)
	}
}

func TestController_ContactDoesNotTouchGallery(t *testing.T) {
	c := NewController(scenarioSnapshot(), nil)
	c.OpenPhotoByID("p2")
	c.NextPhoto()
	before := c.State().Gallery

	c.OpenContact()
	if !c.State().Contact.IsOpen {
		t.Fatal("expected contact to be open")
	}
	c.CloseContact()
	if c.State().Contact.IsOpen {
		t.Fatal("expected contact to be closed")
	}
	if got := c.State().Gallery; got != before {
		t.Fatalf("Gallery = %+v, want %+v", got, before)
	}
}

func TestController_CloseGalleryKeepsIndex(t *testing.T) {
	c := NewController(scenarioSnapshot(), nil)
	c.OpenPhotoByID("p2")
	c.CloseGallery()
	want := GalleryState{IsOpen: false, CurrentIndex: 1}
	if got := c.State().Gallery; got != want {
		t.Fatalf("Gallery = %+v, want %+v", got, want)
	}
}

func TestController_NextPrevAreInverse(t *testing.T) {
	for _, start := range []int{-5, -1, 0, 1, 2, 100} {
		c := NewController(scenarioSnapshot(), nil)
		c.Apply(func(s State) State {
			s.Gallery = GalleryState{IsOpen: true, CurrentIndex: start}
			return s
		})
		c.NextPhoto()
		if got := c.State().Gallery.CurrentIndex; got != start+1 {
			t.Fatalf("after NextPhoto from %d: index = %d", start, got)
		}
		c.PrevPhoto()
		if got := c.State().Gallery.CurrentIndex; got != start {
			t.Fatalf("NextPhoto then PrevPhoto from %d: index = %d", start, got)
		}
		c.PrevPhoto()
		c.NextPhoto()
		if got := c.State().Gallery.CurrentIndex; got != start {
			t.Fatalf("PrevPhoto then NextPhoto from %d: index = %d", start, got)
		}
	}
}

func TestController_NoBoundsChecks(t *testing.T) {
	c := NewController(scenarioSnapshot(), nil)
	c.PrevPhoto()
	c.PrevPhoto()
	if got := c.State().Gallery.CurrentIndex; got != -2 {
		t.Fatalf("CurrentIndex = %d, want -2", got)
	}
	for i := 0; i < 5; i++ {
		c.NextPhoto()
	}
	if got := c.State().Gallery.CurrentIndex; got != 3 {
		t.Fatalf("CurrentIndex = %d, want 3", got)
	}
}

func TestController_PeekDoesNotMutate(t *testing.T) {
	c := NewController(scenarioSnapshot(), nil)
	next := c.Peek(c.OpenPhoto("p1"))
	if !next.Gallery.IsOpen || next.Gallery.CurrentIndex != 0 {
		t.Fatalf("Peek = %+v", next)
	}
	if c.State() != (State{}) {
		t.Fatalf("State() = %+v, want initial state", c.State())
	}
}

func TestController_Reset(t *testing.T) {
	c := NewController(scenarioSnapshot(), nil)
	c.OpenContact()
	c.OpenPhotoByID("p2")
	c.Reset()
	if c.State() != (State{}) {
		t.Fatalf("State() = %+v, want initial state", c.State())
	}
}

func TestNewController_NilSnapshot(t *testing.T) {
	c := NewController(nil, nil)
	if len(c.Photos()) != 0 || len(c.Records()) != 0 || len(c.People()) != 0 {
		t.Fatal("expected empty controller")
	}
}
