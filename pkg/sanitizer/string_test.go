package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"leading and trailing spaces", "  hello  ", "hello"},
		{"internal runs collapsed", "hello    world", "hello world"},
		{"tabs and newlines", "hello\t\nworld", "hello world"},
		{"already normalized", "hello world", "hello world"},
		{"unicode preserved", "Mémé  Dupont", "Mémé Dupont"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TrimAndNormalize(tt.input)
			if result != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTrimAndNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  a   b ", "already clean", "", "\t\t"}
	for _, input := range inputs {
		once := TrimAndNormalize(input)
		twice := TrimAndNormalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeLabel(t *testing.T) {
	if got := NormalizeLabel("  Real Estate  "); got != "real estate" {
		t.Errorf("expected 'real estate', got %q", got)
	}
}

func TestNormalizeStringSlice(t *testing.T) {
	input := []string{"  Alpha ", "alpha", "", "Beta"}
	result := NormalizeStringSlice(input, NormalizeLabel)

	if len(result) != 2 {
		t.Fatalf("expected 2 items, got %d: %v", len(result), result)
	}
	if result[0] != "alpha" || result[1] != "beta" {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestNormalizeStringSliceEmpty(t *testing.T) {
	result := NormalizeStringSlice(nil, NormalizeLabel)
	if result == nil || len(result) != 0 {
		t.Errorf("expected empty slice, got %v", result)
	}
}
