package domain

import "strings"

// Extensions is the set of target file-name suffixes selecting which
// archive entries and direct files are scanned. Entries are lowercase
// and dot-prefixed (e.g. ".csv").
type Extensions []string

// NormaliseExtensions lowercases each suffix and inserts the leading
// dot where missing. Normalisation happens once at the boundary;
// matching afterwards is always against the normalised set.
func NormaliseExtensions(exts []string) Extensions {
	out := make(Extensions, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// Match reports whether the file name ends in one of the target
// suffixes. Comparison is case-insensitive.
func (x Extensions) Match(name string) bool {
	lower := strings.ToLower(name)
	for _, e := range x {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}
