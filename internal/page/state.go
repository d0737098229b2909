// Package page holds the family history page state and the transitions
// that user actions apply to it.
package page

import "github.com/Bitlatte/areyou/internal/model"

// ContactState is the contact dialog visibility.
type ContactState struct {
	IsOpen bool
}

// GalleryState is the lightbox visibility and the photo it shows.
// CurrentIndex indexes the flattened photo list and is not bounds checked.
type GalleryState struct {
	IsOpen       bool
	CurrentIndex int
}

// State is the whole UI state of one page view. The zero value is the
// initial state: both overlays closed, index 0.
type State struct {
	Contact ContactState
	Gallery GalleryState
}

// Transition maps a state to the state produced by one user action.
type Transition func(State) State

func OpenContact(s State) State {
	s.Contact.IsOpen = true
	return s
}

func CloseContact(s State) State {
	s.Contact.IsOpen = false
	return s
}

// CloseGallery hides the lightbox and leaves the index where it was.
func CloseGallery(s State) State {
	s.Gallery.IsOpen = false
	return s
}

func NextPhoto(s State) State {
	s.Gallery.CurrentIndex++
	return s
}

func PrevPhoto(s State) State {
	s.Gallery.CurrentIndex--
	return s
}

// OpenPhotoByID opens the lightbox at the first photo whose ID matches.
// An unknown id opens it at -1.
func OpenPhotoByID(photos []*model.Photo, id string) Transition {
	index := IndexOf(photos, id)
	return func(s State) State {
		s.Gallery.IsOpen = true
		s.Gallery.CurrentIndex = index
		return s
	}
}

// IndexOf returns the position of the first photo with the given id, or -1.
func IndexOf(photos []*model.Photo, id string) int {
	for i, p := range photos {
		if p != nil && p.ID == id {
			return i
		}
	}
	return -1
}
