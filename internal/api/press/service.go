// Package press serves the press mentions, newest first.
package press

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/petruschka/site-api/internal/eventdate"
	"github.com/petruschka/site-api/internal/types"
)

type Store interface {
	Press(ctx context.Context) ([]types.PressDoc, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]types.Press, error) {
	docs, err := s.store.Press(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load press: %w", err)
	}

	type dated struct {
		press types.Press
		at    time.Time
	}
	entries := make([]dated, 0, len(docs))
	for _, doc := range docs {
		at, ok := eventdate.Parse(doc.Date)
		date := ""
		if ok {
			date = at.Format(time.RFC3339)
		} else if raw, isString := doc.Date.(string); isString {
			date = raw
		}
		entries = append(entries, dated{
			at: at,
			press: types.Press{
				ID:            types.IDString(doc.ID),
				Nr:            doc.Nr,
				Desc:          doc.Desc,
				Source:        doc.Source,
				Date:          date,
				Author:        doc.Author,
				FileExtension: doc.FileExtension,
				Link:          doc.Link,
				Quote:         doc.Quote,
			},
		})
	}

	// Undated entries have the zero time and sort last.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].at.After(entries[j].at)
	})

	out := make([]types.Press, len(entries))
	for i, e := range entries {
		out[i] = e.press
	}
	return out, nil
}
