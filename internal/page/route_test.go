package page

import "testing"

func TestRoute(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		state State
		want  string
	}{
		{name: "initial", base: "/areyou", state: State{}, want: "/areyou/"},
		{name: "contact", base: "/areyou", state: OpenContact(State{}), want: "/areyou/contact/"},
		{name: "gallery", base: "/areyou/", state: State{Gallery: GalleryState{IsOpen: true, CurrentIndex: 3}}, want: "/areyou/gallery/3/"},
		{name: "gallery wins", base: "/areyou", state: State{Contact: ContactState{IsOpen: true}, Gallery: GalleryState{IsOpen: true}}, want: "/areyou/gallery/0/"},
		{name: "closed gallery", base: "/areyou", state: CloseGallery(State{Gallery: GalleryState{IsOpen: true, CurrentIndex: 4}}), want: "/areyou/"},
		{name: "root base", base: "", state: State{Gallery: GalleryState{IsOpen: true, CurrentIndex: -1}}, want: "/gallery/-1/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Route(tt.base, tt.state); got != tt.want {
				t.Fatalf("Route() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRoute_RoundTrip(t *testing.T) {
	states := []State{
		{},
		OpenContact(State{}),
		{Gallery: GalleryState{IsOpen: true, CurrentIndex: 0}},
		{Gallery: GalleryState{IsOpen: true, CurrentIndex: 12}},
		{Gallery: GalleryState{IsOpen: true, CurrentIndex: -1}},
	}
	for _, s := range states {
		path := Route("/areyou", s)
		got, ok := ParseRoute("/areyou", path)
		if !ok {
			t.Fatalf("ParseRoute(%q) not ok", path)
		}
		if got != s {
			t.Fatalf("ParseRoute(%q) = %+v, want %+v", path, got, s)
		}
	}
}

func TestParseRoute_Rejects(t *testing.T) {
	for _, path := range []string{"/other/", "/areyou/gallery/x/", "/areyou/photos/", "/areyoux/"} {
		if _, ok := ParseRoute("/areyou", path); ok {
			t.Fatalf("ParseRoute(%q) ok, want rejection", path)
		}
	}
}
