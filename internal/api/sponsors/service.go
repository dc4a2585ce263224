// Package sponsors ranks sponsors by their average share across events.
package sponsors

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/petruschka/site-api/internal/types"
)

const (
	PlaceholderImage = "PLACEHOLDER"
	imageResize      = "?nf_resize=fit&w=200"
)

// sizeClasses are checked top down; anything below the last threshold is xs.
var sizeClasses = []struct {
	min   float64
	class string
}{
	{0.3, "sponsor-xl"},
	{0.2, "sponsor-lg"},
	{0.15, "sponsor-md"},
	{0.1, "sponsor-sm"},
}

type Store interface {
	Sponsors(ctx context.Context) ([]types.SponsorDoc, error)
}

type Service struct {
	store     Store
	imageBase string
}

func NewService(store Store, imageBase string) *Service {
	return &Service{store: store, imageBase: imageBase}
}

// List returns the sponsors with the largest average share first.
func (s *Service) List(ctx context.Context) ([]types.Sponsor, error) {
	docs, err := s.store.Sponsors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sponsors: %w", err)
	}

	sponsors := make([]types.Sponsor, 0, len(docs))
	for _, doc := range docs {
		sponsors = append(sponsors, s.toSponsor(doc))
	}
	sort.SliceStable(sponsors, func(i, j int) bool {
		return sponsors[i].TotalShare > sponsors[j].TotalShare
	})
	return sponsors, nil
}

func (s *Service) toSponsor(doc types.SponsorDoc) types.Sponsor {
	events := doc.Events
	if events == nil {
		events = []types.SponsorEvent{}
	}
	share := AverageShare(events)

	id := types.IDString(doc.ID)
	if id == "" {
		id = doc.Name
	}
	url := doc.URL
	if url == "" {
		url = "#"
	}
	image := PlaceholderImage
	if img := strings.TrimSpace(doc.Image); img != "" {
		image = s.imageBase + img + imageResize
	}

	return types.Sponsor{
		ID:         id,
		Name:       doc.Name,
		URL:        url,
		Image:      image,
		Events:     events,
		TotalShare: share,
		SizeClass:  SizeClass(share),
	}
}

// AverageShare divides the summed shares by the number of events. A sponsor
// without events has share 0.
func AverageShare(events []types.SponsorEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	var total float64
	for _, e := range events {
		total += e.Share
	}
	return total / float64(len(events))
}

func SizeClass(share float64) string {
	for _, sc := range sizeClasses {
		if share >= sc.min {
			return sc.class
		}
	}
	return "sponsor-xs"
}
