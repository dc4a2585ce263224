// Package locations looks up venue details by name.
package locations

import (
	"context"
	"fmt"
	"strings"

	"github.com/petruschka/site-api/internal/types"
)

const unknownName = "Unknown Location"

type Store interface {
	LocationByName(ctx context.Context, name string) (*types.LocationDoc, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ByName matches name case-insensitively. Blank names are ErrInvalidID and
// unknown ones ErrNotFound.
func (s *Service) ByName(ctx context.Context, name string) (*types.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.ErrInvalidID
	}

	doc, err := s.store.LocationByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("location %q: %w", name, err)
	}

	loc := types.Location{
		ID:         types.ObjectIDRef{OID: types.IDString(doc.ID)},
		Name:       doc.Name,
		Street:     doc.Street,
		PostalCode: doc.PostalCode,
		City:       doc.City,
		Directions: doc.Directions,
		Info:       doc.Info,
	}
	if loc.Name == "" {
		loc.Name = unknownName
	}
	if doc.EfID != nil {
		loc.EfID = types.IDString(doc.EfID)
	}
	return &loc, nil
}
