package search

import (
	"strings"

	"saga-be/internal/entity"
)

// QueryFilters holds the kind hint extracted from a raw query and the
// remaining text to search.
type QueryFilters struct {
	Kind        *entity.Kind
	SearchQuery string
}

// ParseQuery extracts slash commands from the raw query string
// Supported:
// /film, /dizi, /kitap (and /movie, /series, /book) -> kind hint
// /tur:<kind> -> kind hint
// <text> -> remaining text is the SearchQuery
func ParseQuery(raw string) QueryFilters {
	filters := QueryFilters{}
	var cleanParts []string

	for _, part := range strings.Fields(raw) {
		lowerPart := strings.ToLower(part)

		switch {
		case strings.HasPrefix(lowerPart, "/tur:"):
			if k := ParseKind(strings.TrimPrefix(lowerPart, "/tur:")); k != nil {
				filters.Kind = k
				continue
			}
			cleanParts = append(cleanParts, part)
		case strings.HasPrefix(lowerPart, "/"):
			if k := ParseKind(strings.TrimPrefix(lowerPart, "/")); k != nil {
				filters.Kind = k
				continue
			}
			cleanParts = append(cleanParts, part)
		default:
			cleanParts = append(cleanParts, part)
		}
	}

	filters.SearchQuery = strings.Join(cleanParts, " ")
	return filters
}

// ParseKind accepts the database spelling and the English one,
// case-insensitively. Anything else means "no filter".
func ParseKind(raw string) *entity.Kind {
	var k entity.Kind
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "film", "movie":
		k = entity.KindMovie
	case "dizi", "series", "tv":
		k = entity.KindSeries
	case "kitap", "book":
		k = entity.KindBook
	default:
		return nil
	}
	return &k
}
