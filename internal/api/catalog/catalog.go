// Package catalog serves albums, band members, contact details and merchandise.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/petruschka/site-api/internal/types"
)

//go:embed data/catalog.json
var catalogJSON []byte

// Catalog is the static content shipped with the binary. It backs the
// endpoints whose database source is empty or unavailable.
type Catalog struct {
	Albums      []types.Album         `json:"albums"`
	BandMembers []types.BandMember    `json:"bandMembers"`
	Merchandise []types.MerchItem     `json:"merchandise"`
	Contact     types.ContactResponse `json:"contact"`
}

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(catalogJSON, &c); err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return &c, nil
}
