package domain

import (
	"strings"

	"github.com/google/uuid"
)

// VendorIMDB is the only metadata vendor the catalog currently references.
const VendorIMDB = "imdb"

// Movie represents one entry of the fixed catalog. Movies are seeded at
// startup and never mutated afterwards.
type Movie struct {
	ID         uuid.UUID
	Title      string
	ExternalID string
}

// IMDBID derives the vendor-specific identifier from the movie's external id.
// External ids follow the "<vendor>:<vendorId>" format; anything that does not
// split into exactly an "imdb" prefix and a non-empty id yields ok=false.
func (m Movie) IMDBID() (string, bool) {
	parts := strings.Split(m.ExternalID, ":")
	if len(parts) != 2 {
		return "", false
	}
	if parts[0] != VendorIMDB || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
