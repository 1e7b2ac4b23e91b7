// Package http provides the JSON API over the dashboard pipeline.
//
// This file implements parsing of the dashboard query string into a
// selection. An absent filter parameter selects every value, matching the
// "all selected" default of the filter widgets; a parameter that is present
// but carries no value selects nothing.

package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"superstore/internal/core"
)

// Query parameter names.
const (
	ParamCategory = "category"
	ParamSegment  = "segment"
	ParamRows     = "rows"
)

// SelectionParams holds the filter values found in a query string.
type SelectionParams struct {
	Categories    []string
	HasCategories bool
	Segments      []string
	HasSegments   bool
	IncludeRows   bool
}

// ParseSelectionParams extracts repeated category and segment values and
// the rows flag.
func ParseSelectionParams(query url.Values) (SelectionParams, error) {
	var p SelectionParams

	p.Categories, p.HasCategories = multiValue(query, ParamCategory)
	p.Segments, p.HasSegments = multiValue(query, ParamSegment)

	if v := strings.TrimSpace(query.Get(ParamRows)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return SelectionParams{}, fmt.Errorf("invalid %s value %q: must be true or false", ParamRows, v)
		}
		p.IncludeRows = b
	}

	return p, nil
}

// Resolve turns the params into a selection, filling absent filters with
// the given defaults.
func (p SelectionParams) Resolve(allCategories, allSegments []string) core.Selection {
	cats, segs := p.Categories, p.Segments
	if !p.HasCategories {
		cats = allCategories
	}
	if !p.HasSegments {
		segs = allSegments
	}
	return core.Selection{
		Categories:  core.NewSet(cats...),
		Segments:    core.NewSet(segs...),
		IncludeRows: p.IncludeRows,
	}
}

// multiValue returns the non-blank values of key and whether key was present.
func multiValue(query url.Values, key string) ([]string, bool) {
	raw, ok := query[key]
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		v = core.CleanSelectionValue(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out, true
}
