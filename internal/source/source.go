// Package source loads the family history records and the people list the
// page is built from.
package source

import (
	"context"
	"errors"
	"sort"

	"github.com/Bitlatte/areyou/internal/model"
	"github.com/Bitlatte/areyou/internal/page"
)

// ErrNoYear is returned for a record that does not declare its year.
var ErrNoYear = errors.New("record has no year")

// DataSource yields one snapshot of the page data. Records come back in
// ascending year order and people in ascending order.
type DataSource interface {
	Load(ctx context.Context) (*page.Snapshot, error)
}

// Sort puts the snapshot in the order the page expects. Ties keep their
// relative order.
func Sort(s *page.Snapshot) {
	sort.SliceStable(s.Records, func(i, j int) bool {
		return s.Records[i].Year < s.Records[j].Year
	})
	sort.SliceStable(s.People, func(i, j int) bool {
		return s.People[i].Order < s.People[j].Order
	})
}

func countPhotos(records []*model.HistoryRecord) int {
	n := 0
	for _, r := range records {
		n += len(r.Photos)
	}
	return n
}
