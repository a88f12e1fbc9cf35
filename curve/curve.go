// Package curve defines the yield curve quote type and maturity tag
// conversions shared by the models, metrics and loaders.
package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidTag reports a maturity tag that does not match <number>[M|Y].
var ErrInvalidTag = errors.New("invalid maturity tag")

// Curve maps a maturity tag ("3M", "10Y", case-insensitive) to an annualized
// yield in percent (4.02 means 4.02%). Tags are unique by construction; use
// SortedTags or Points to iterate in ascending maturity order.
type Curve map[string]float64

// MaturityToYears converts a maturity tag to a year count.
// "M" suffixes divide by 12, "Y" suffixes pass through. Surrounding
// whitespace is ignored and matching is case-insensitive.
func MaturityToYears(tag string) (float64, error) {
	t := strings.ToUpper(strings.TrimSpace(tag))
	if len(t) < 2 {
		return 0, fmt.Errorf("MaturityToYears: %q: %w", tag, ErrInvalidTag)
	}

	num, err := strconv.ParseFloat(t[:len(t)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("MaturityToYears: %q: %w", tag, ErrInvalidTag)
	}

	switch t[len(t)-1] {
	case 'M':
		return num / 12.0, nil
	case 'Y':
		return num, nil
	}
	return 0, fmt.Errorf("MaturityToYears: %q: %w (want e.g. 3M or 10Y)", tag, ErrInvalidTag)
}

// YearsToMaturity converts a year count back to a display tag. Sub-year
// values round to the nearest month ("1M", "3M", "6M", or "<N>M" for
// non-canonical counts); everything else rounds to the nearest year.
// The mapping is lossy and intended for display, not round-tripping
// arbitrary floats.
func YearsToMaturity(years float64) string {
	if years < 1.0 {
		months := int(math.Round(years * 12.0))
		return fmt.Sprintf("%dM", months)
	}
	return fmt.Sprintf("%dY", int(math.Round(years)))
}

// SortedTags returns the curve's tags ordered by ascending year-equivalent.
func (c Curve) SortedTags() ([]string, error) {
	type entry struct {
		tag   string
		years float64
	}

	entries := make([]entry, 0, len(c))
	for tag := range c {
		y, err := MaturityToYears(tag)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{tag: tag, years: y})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].years < entries[j].years
	})

	tags := make([]string, len(entries))
	for i, e := range entries {
		tags[i] = e.tag
	}
	return tags, nil
}

// Points converts the curve to parallel (years, yields) arrays sorted
// ascending by maturity — the fitting input for both models. Distinct tags
// that collapse to the same year value (e.g. "12M" alongside "1Y") are
// rejected since the spline requires strictly increasing nodes.
func (c Curve) Points() (years, yields []float64, err error) {
	tags, err := c.SortedTags()
	if err != nil {
		return nil, nil, err
	}

	years = make([]float64, len(tags))
	yields = make([]float64, len(tags))
	for i, tag := range tags {
		y, err := MaturityToYears(tag)
		if err != nil {
			return nil, nil, err
		}
		years[i] = y
		yields[i] = c[tag]
	}

	for i := 1; i < len(years); i++ {
		if years[i] == years[i-1] {
			return nil, nil, fmt.Errorf("curve: duplicate maturity %s (%.6f years)",
				tags[i], years[i])
		}
	}
	return years, yields, nil
}
