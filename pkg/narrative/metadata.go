package narrative

import (
	"bytes"
	"math"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// CurrentSchemaVersion is assumed when a document carries no schemaVersion.
const CurrentSchemaVersion = 1

// Metadata is the typed view of a catalog row's meta_veri document. Only
// the fields the statistics use are modelled; unknown keys are ignored.
type Metadata struct {
	SchemaVersion int
	Genres        []string // turler
	Categories    []string // kategoriler
	Authors       []string // yazarlar
	Minutes       *int     // sure
	Pages         *int     // sayfaSayisi
}

// ParseReport lists what could not be used. Invalid means the document as
// a whole was unreadable and nothing was parsed.
type ParseReport struct {
	Invalid bool
	Skipped []string
}

func (r ParseReport) Clean() bool {
	return !r.Invalid && len(r.Skipped) == 0
}

// ParseMetadata reads the fields it knows and reports the rest. An empty
// or "{}" document is a clean, empty parse.
func ParseMetadata(raw []byte) (Metadata, ParseReport) {
	md := Metadata{SchemaVersion: CurrentSchemaVersion}
	var report ParseReport

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return md, report
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		report.Invalid = true
		return md, report
	}

	if v, ok := fields["schemaVersion"]; ok {
		if n, ok := parseInt(v); ok {
			md.SchemaVersion = n
		} else {
			report.Skipped = append(report.Skipped, "schemaVersion")
		}
	}

	md.Genres = parseStrings(fields, "turler", &report)
	md.Categories = parseStrings(fields, "kategoriler", &report)
	md.Authors = parseStrings(fields, "yazarlar", &report)
	md.Minutes = parseOptionalInt(fields, "sure", &report)
	md.Pages = parseOptionalInt(fields, "sayfaSayisi", &report)

	sort.Strings(report.Skipped)
	return md, report
}

func parseStrings(fields map[string]json.RawMessage, key string, report *ParseReport) []string {
	v, ok := fields[key]
	if !ok || isNull(v) {
		return nil
	}
	var raw []interface{}
	if err := json.Unmarshal(v, &raw); err != nil {
		report.Skipped = append(report.Skipped, key)
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		s, ok := el.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseOptionalInt(fields map[string]json.RawMessage, key string, report *ParseReport) *int {
	v, ok := fields[key]
	if !ok || isNull(v) {
		return nil
	}
	n, ok := parseInt(v)
	if !ok {
		report.Skipped = append(report.Skipped, key)
		return nil
	}
	return &n
}

// parseInt accepts JSON numbers only; fractions are truncated.
func parseInt(v json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(v, &f); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
