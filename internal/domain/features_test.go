package domain

import "testing"

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSLD    string
		wantTLD    string
		wantLength int
		wantDigits bool
	}{
		{"plain com", "example.com", "example", ".com", 7, false},
		{"ai suffix", "brandable.ai", "brandable", ".ai", 9, false},
		{"scheme stripped", "https://example.io", "example", ".io", 7, false},
		{"http scheme stripped", "http://example.io", "example", ".io", 7, false},
		{"path stripped", "example.com/landing/page", "example", ".com", 7, false},
		{"trailing dot", "example.com.", "example", ".com", 7, false},
		{"uppercased", "EXAMPLE.COM", "example", ".com", 7, false},
		{"multi-label suffix", "shop.co.uk", "shop", ".co.uk", 4, false},
		{"subdomain dropped", "www.example.com", "example", ".com", 7, false},
		{"digits", "abc123.com", "abc123", ".com", 6, true},
		{"bare label defaults to com", "example", "example", ".com", 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseFeatures(tt.input)
			if f.SLD != tt.wantSLD {
				t.Errorf("SLD: got %q, want %q", f.SLD, tt.wantSLD)
			}
			if f.TLD != tt.wantTLD {
				t.Errorf("TLD: got %q, want %q", f.TLD, tt.wantTLD)
			}
			if f.Length != tt.wantLength {
				t.Errorf("Length: got %d, want %d", f.Length, tt.wantLength)
			}
			if f.HasNumbers != tt.wantDigits {
				t.Errorf("HasNumbers: got %v, want %v", f.HasNumbers, tt.wantDigits)
			}
		})
	}
}

func TestParseFeatures_UnicodeLength(t *testing.T) {
	f := ParseFeatures("müller.de")
	if f.Length != 6 {
		t.Errorf("unicode length counts runes: got %d, want 6", f.Length)
	}
}

func TestDigitFraction(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"", 0},
		{"abc", 0},
		{"abc123", 0.5},
		{"123", 1},
		{"a1", 0.5},
	}
	for _, tt := range tests {
		if got := DigitFraction(tt.input); got != tt.want {
			t.Errorf("DigitFraction(%q): got %g, want %g", tt.input, got, tt.want)
		}
	}
}
