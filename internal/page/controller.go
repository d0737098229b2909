package page

import (
	"log/slog"

	"github.com/Bitlatte/areyou/internal/gallery"
	"github.com/Bitlatte/areyou/internal/model"
)

// Snapshot is the read-only data one page view renders.
type Snapshot struct {
	Records []*model.HistoryRecord
	People  []*model.Person
}

// Controller owns the state of one page view. The flattened photo list is
// derived once from the snapshot it was built with; a new snapshot needs a
// new Controller.
type Controller struct {
	snapshot *Snapshot
	photos   []*model.Photo
	state    State
	logger   *slog.Logger
}

// NewController flattens the snapshot's photos and starts in the initial state.
func NewController(snapshot *Snapshot, logger *slog.Logger) *Controller {
	if snapshot == nil {
		snapshot = &Snapshot{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		snapshot: snapshot,
		photos:   gallery.Flatten(snapshot.Records),
		logger:   logger,
	}
}

func (c *Controller) State() State                    { return c.state }
func (c *Controller) Photos() []*model.Photo          { return c.photos }
func (c *Controller) Records() []*model.HistoryRecord { return c.snapshot.Records }
func (c *Controller) People() []*model.Person         { return c.snapshot.People }

// Apply moves the controller to the state t produces.
func (c *Controller) Apply(t Transition) {
	c.state = t(c.state)
}

// Peek returns the state t would produce without applying it.
func (c *Controller) Peek(t Transition) State {
	return t(c.state)
}

// Reset returns to the initial state.
func (c *Controller) Reset() {
	c.state = State{}
}

func (c *Controller) OpenContact()  { c.Apply(OpenContact) }
func (c *Controller) CloseContact() { c.Apply(CloseContact) }
func (c *Controller) CloseGallery() { c.Apply(CloseGallery) }
func (c *Controller) NextPhoto()    { c.Apply(NextPhoto) }
func (c *Controller) PrevPhoto()    { c.Apply(PrevPhoto) }

func (c *Controller) OpenPhotoByID(id string) {
	c.Apply(c.OpenPhoto(id))
	if c.state.Gallery.CurrentIndex < 0 {
		c.logger.Debug("photo not in gallery", "id", id)
	}
}

// OpenPhoto is the transition for opening the photo with the given id.
func (c *Controller) OpenPhoto(id string) Transition {
	return OpenPhotoByID(c.photos, id)
}
