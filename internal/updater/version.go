package updater

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionTag is a three-component version used to decide staleness. It is a
// value type: comparisons never mutate it.
type VersionTag struct {
	v *semver.Version
}

// ParseTag parses a possibly v-prefixed dot-separated version string. It
// never fails: a missing or unparsable component defaults to 0, so garbage
// input yields 0.0.0 rather than an error. Trailing non-numeric text after
// a component ("1.2.3-nightly") is ignored.
func ParseTag(text string) VersionTag {
	text = strings.TrimPrefix(strings.TrimSpace(text), "v")

	var parts [3]uint64
	for i, comp := range strings.SplitN(text, ".", 4) {
		if i == 3 {
			break
		}
		parts[i] = leadingUint(comp)
	}
	return VersionTag{v: semver.New(parts[0], parts[1], parts[2], "", "")}
}

// Newer reports whether t is strictly newer than other. Major is compared
// first; minor only on a major tie; patch only on a minor tie.
func (t VersionTag) Newer(other VersionTag) bool {
	return t.v.Compare(other.v) > 0
}

// Major returns the major component.
func (t VersionTag) Major() uint64 { return t.v.Major() }

// Minor returns the minor component.
func (t VersionTag) Minor() uint64 { return t.v.Minor() }

// Patch returns the patch component.
func (t VersionTag) Patch() uint64 { return t.v.Patch() }

func (t VersionTag) String() string { return t.v.String() }

// leadingUint returns the decimal value of the leading digit run of s,
// or 0 if s does not start with a digit.
func leadingUint(s string) uint64 {
	var n uint64
	var seen bool
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		seen = true
		n = n*10 + uint64(r-'0')
	}
	if !seen {
		return 0
	}
	return n
}
