package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchMode identifies which matching rule a MatchSpec applies.
type MatchMode int

const (
	// ModeLiteral requires every term to appear as a plain substring.
	ModeLiteral MatchMode = iota

	// ModeNumberAware is ModeLiteral with digit-only terms restricted
	// to delimited numeric tokens.
	ModeNumberAware

	// ModeRegex applies a single regular expression.
	ModeRegex
)

// String returns a human-readable mode name for report headers.
func (m MatchMode) String() string {
	switch m {
	case ModeLiteral:
		return "keywords"
	case ModeNumberAware:
		return "keywords (number-aware)"
	case ModeRegex:
		return "regex"
	default:
		return "unknown"
	}
}

// MatchSpec is the search criteria for one run. Exactly one variant is
// active: literal terms, number-aware terms, or a compiled regex.
// Construct it once per run and pass it down; the variant is never
// re-decided per line.
type MatchSpec struct {
	mode    MatchMode
	terms   []string
	pattern *regexp.Regexp
}

// NewLiteral creates a spec where every term must be a substring of the
// line (logical AND across terms).
func NewLiteral(terms []string) MatchSpec {
	return MatchSpec{mode: ModeLiteral, terms: terms}
}

// NewNumberAware creates a spec where digit-only terms must match as
// delimited number tokens and other terms as plain substrings.
func NewNumberAware(terms []string) MatchSpec {
	return MatchSpec{mode: ModeNumberAware, terms: terms}
}

// NewRegex creates a spec from a regular expression pattern. The
// pattern is applied as a contains-anywhere search, not anchored.
func NewRegex(pattern string) (MatchSpec, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return MatchSpec{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return MatchSpec{mode: ModeRegex, pattern: re}, nil
}

// Mode returns the active variant.
func (s MatchSpec) Mode() MatchMode {
	return s.mode
}

// Terms returns the keyword terms. Empty for regex specs.
func (s MatchSpec) Terms() []string {
	return s.terms
}

// Pattern returns the regex source. Empty for keyword specs.
func (s MatchSpec) Pattern() string {
	if s.pattern == nil {
		return ""
	}
	return s.pattern.String()
}

// Describe returns the one-line description used as the report header.
func (s MatchSpec) Describe() string {
	if s.mode == ModeRegex {
		return fmt.Sprintf("Search %s: %s", s.mode, s.Pattern())
	}
	return fmt.Sprintf("Search %s: %s", s.mode, strings.Join(s.terms, ", "))
}

// Matches reports whether the given line satisfies the spec. The line
// must already be trimmed of leading and trailing whitespace; trimming
// happens once per line, before matching and before the line is stored
// in a ResultRecord.
//
// An empty term list in either AND mode matches every line (vacuous
// AND-true). Rejecting zero-criteria runs is the caller's concern.
func (s MatchSpec) Matches(line string) bool {
	switch s.mode {
	case ModeRegex:
		return s.pattern.MatchString(line)
	case ModeNumberAware:
		for _, term := range s.terms {
			if isAllDigits(term) {
				if !containsNumberToken(line, term) {
					return false
				}
			} else if !strings.Contains(line, term) {
				return false
			}
		}
		return true
	default:
		for _, term := range s.terms {
			if !strings.Contains(line, term) {
				return false
			}
		}
		return true
	}
}

// isAllDigits reports whether term is non-empty and consists solely of
// decimal digits.
func isAllDigits(term string) bool {
	if term == "" {
		return false
	}
	for i := 0; i < len(term); i++ {
		if term[i] < '0' || term[i] > '9' {
			return false
		}
	}
	return true
}

// containsNumberToken reports whether the digit sequence occurs in the
// line as a delimited number token: not immediately preceded or
// followed by a digit, a period, or a hyphen. This keeps a bare "80"
// from matching inside "10.80.1.5" or "1980-01-01".
func containsNumberToken(line, digits string) bool {
	for start := 0; start+len(digits) <= len(line); {
		idx := strings.Index(line[start:], digits)
		if idx < 0 {
			return false
		}
		idx += start
		if numberBoundary(line, idx, len(digits)) {
			return true
		}
		start = idx + 1
	}
	return false
}

// numberBoundary checks both neighbours of line[idx:idx+n] against the
// excluded characters. The digit sequence and the excluded set are all
// ASCII, so byte inspection is exact.
func numberBoundary(line string, idx, n int) bool {
	if idx > 0 && isNumberChar(line[idx-1]) {
		return false
	}
	if end := idx + n; end < len(line) && isNumberChar(line[end]) {
		return false
	}
	return true
}

func isNumberChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-'
}
