package catalog

import (
	"sort"
	"time"
)

// NaturalKey is the (system, device, part) triple taken from a descriptor's
// position in the parts repository.
type NaturalKey struct {
	System string
	Device string
	Part   string
}

// String renders the key as a slash-separated path.
func (k NaturalKey) String() string {
	return k.System + "/" + k.Device + "/" + k.Part
}

// Attributes are the descriptive fields a descriptor supplies. Every import
// overwrites all of them.
type Attributes struct {
	Author      string
	Class       string
	Fits        []string
	License     string
	Description string
}

// Part is a persisted catalog entry.
type Part struct {
	UUID string
	Key  NaturalKey
	Attributes
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fit reports whether model appears in the part's fits list.
func (p *Part) Fit(model string) bool {
	if p == nil {
		return false
	}
	i := sort.SearchStrings(p.Fits, model)
	return i < len(p.Fits) && p.Fits[i] == model
}

// Counter tracks usage of a part.
type Counter struct {
	UUID      string
	Views     int64
	Downloads int64
}

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	System string
	Device string
	Model  string
}

// NormalizeFits returns the distinct model identifiers in byte-wise lexical
// order. Comparison is case-sensitive.
func NormalizeFits(fits []string) []string {
	seen := make(map[string]struct{}, len(fits))
	out := make([]string, 0, len(fits))
	for _, model := range fits {
		if _, ok := seen[model]; ok {
			continue
		}
		seen[model] = struct{}{}
		out = append(out, model)
	}
	sort.Strings(out)
	return out
}
