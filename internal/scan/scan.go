// Package scan finds movie files in a directory and picks one by size.
package scan

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Candidate is a regular file matching the name pattern.
type Candidate struct {
	Name string // base name
	Path string // dir joined with Name
	Size int64
}

// Candidates lists the regular files directly inside dir whose name starts
// with prefix and ends with ext. Both checks are case-sensitive. Results are
// sorted by name. Subdirectories are not descended into.
func Candidates(dir, prefix, ext string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if !Matches(name, prefix, ext) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}

		out = append(out, Candidate{
			Name: name,
			Path: filepath.Join(dir, name),
			Size: info.Size(),
		})
	}

	// Tie-breaking in Largest/Smallest depends on this order.
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Matches reports whether name has the prefix and extension.
// A bare prefix+ext with nothing between still matches.
func Matches(name, prefix, ext string) bool {
	return len(name) >= len(prefix)+len(ext) &&
		strings.HasPrefix(name, prefix) &&
		strings.HasSuffix(name, ext)
}

// Largest returns the biggest candidate. Ties go to the earliest one.
// ok is false when cands is empty.
func Largest(cands []Candidate) (Candidate, bool) {
	return pick(cands, func(a, b int64) bool { return a > b })
}

// Smallest returns the smallest candidate. Ties go to the earliest one.
func Smallest(cands []Candidate) (Candidate, bool) {
	return pick(cands, func(a, b int64) bool { return a < b })
}

func pick(cands []Candidate, better func(a, b int64) bool) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if better(c.Size, best.Size) {
			best = c
		}
	}
	return best, true
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
