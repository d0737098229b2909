package page

import (
	"strconv"
	"strings"
)

// Route returns the URL path, under base, of the page rendered in state s.
// An open gallery wins over an open contact dialog.
func Route(base string, s State) string {
	base = strings.TrimSuffix(base, "/")
	switch {
	case s.Gallery.IsOpen:
		return base + "/gallery/" + strconv.Itoa(s.Gallery.CurrentIndex) + "/"
	case s.Contact.IsOpen:
		return base + "/contact/"
	}
	return base + "/"
}

// ParseRoute is the inverse of Route. It reports false for paths that are
// not a page route under base.
func ParseRoute(base, path string) (State, bool) {
	base = strings.TrimSuffix(base, "/")
	rest, ok := strings.CutPrefix(path, base)
	if !ok {
		return State{}, false
	}
	rest = strings.Trim(rest, "/")
	switch {
	case rest == "":
		return State{}, true
	case rest == "contact":
		return OpenContact(State{}), true
	case strings.HasPrefix(rest, "gallery/"):
		i, err := strconv.Atoi(strings.TrimPrefix(rest, "gallery/"))
		if err != nil {
			return State{}, false
		}
		return State{Gallery: GalleryState{IsOpen: true, CurrentIndex: i}}, true
	}
	return State{}, false
}
