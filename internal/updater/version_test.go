package updater

import (
	"testing"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "1.2.3", "1.2.3"},
		{"v prefix", "v1.2.3", "1.2.3"},
		{"trailing junk ignored", "1.2.3-anything-after-is-ignored-safely", "1.2.3"},
		{"missing patch", "1.2", "1.2.0"},
		{"missing minor and patch", "1", "1.0.0"},
		{"empty", "", "0.0.0"},
		{"garbage", "notaversion", "0.0.0"},
		{"garbage component", "1.x.3", "1.0.3"},
		{"extra components ignored", "1.2.3.4", "1.2.3"},
		{"surrounding whitespace", "  v2.0.1\n", "2.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTag(tt.input)
			if got.String() != tt.want {
				t.Errorf("ParseTag(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionTagNewer(t *testing.T) {
	tests := []struct {
		name  string
		self  string
		other string
		want  bool
	}{
		{"newer patch", "1.0.1", "1.0.0", true},
		{"newer minor", "1.1.0", "1.0.9", true},
		{"newer major", "2.0.0", "1.9.9", true},
		{"equal", "1.2.3", "1.2.3", false},
		{"older", "1.2.3", "1.3.0", false},
		// Major takes precedence even when minor/patch are smaller.
		{"major newer minor smaller", "2.0.0", "1.5.7", true},
		{"minor newer patch smaller", "1.3.0", "1.2.9", true},
		{"major older minor larger", "1.9.9", "2.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTag(tt.self).Newer(ParseTag(tt.other))
			if got != tt.want {
				t.Errorf("ParseTag(%q).Newer(%q) = %v, want %v", tt.self, tt.other, got, tt.want)
			}
		})
	}
}

// Newer must be consistent with lexicographic order on (major, minor, patch).
func TestVersionTagNewerLexicographic(t *testing.T) {
	versions := []string{
		"0.0.0", "0.0.1", "0.1.0", "0.9.9", "1.0.0", "1.0.1", "1.2.0", "1.2.9", "1.3.0", "2.0.0",
	}

	for i, lo := range versions {
		for j, hi := range versions {
			got := ParseTag(hi).Newer(ParseTag(lo))
			want := j > i
			if got != want {
				t.Errorf("ParseTag(%q).Newer(%q) = %v, want %v", hi, lo, got, want)
			}
		}
	}
}
