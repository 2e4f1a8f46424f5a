// Package query answers the read-only questions asked of a loaded movie
// collection. Every operation scans the collection linearly and leaves it
// untouched.
package query

import (
	"slices"
	"strconv"

	"github.com/JonMunkholm/movies/internal/movie"
)

// YearBest is the highest rated movie of one year.
type YearBest struct {
	Year   int
	Rating float64
	Title  string
}

// YearTitle pairs a title with its release year.
type YearTitle struct {
	Year  int
	Title string
}

// ByYear returns the titles released in year, in source order.
// found is false when no record matches.
func ByYear(c movie.Collection, year int) (titles []string, found bool) {
	for i := range c.Len() {
		if r := c.At(i); r.Year == year {
			titles = append(titles, r.Title)
		}
	}
	return titles, len(titles) > 0
}

// BestPerYear returns one entry per distinct year, ascending by year.
// When ratings tie, the record seen first keeps the slot.
func BestPerYear(c movie.Collection) []YearBest {
	best := make(map[int]YearBest)
	for i := range c.Len() {
		r := c.At(i)
		cur, ok := best[r.Year]
		if !ok || r.Rating > cur.Rating {
			best[r.Year] = YearBest{Year: r.Year, Rating: r.Rating, Title: r.Title}
		}
	}

	out := make([]YearBest, 0, len(best))
	for _, b := range best {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b YearBest) int { return a.Year - b.Year })
	return out
}

// ByLanguage returns (year, title) for every record listing lang, in source
// order. Matching is exact and case-sensitive against whole tokens.
func ByLanguage(c movie.Collection, lang string) (matches []YearTitle, found bool) {
	for i := range c.Len() {
		if r := c.At(i); r.HasLanguage(lang) {
			matches = append(matches, YearTitle{Year: r.Year, Title: r.Title})
		}
	}
	return matches, len(matches) > 0
}

// GroupTitlesByYear buckets titles by year, keyed by the decimal year.
// Titles keep their source order within a bucket.
func GroupTitlesByYear(c movie.Collection) map[string][]string {
	groups := make(map[string][]string)
	for i := range c.Len() {
		r := c.At(i)
		key := strconv.Itoa(r.Year)
		groups[key] = append(groups[key], r.Title)
	}
	return groups
}
