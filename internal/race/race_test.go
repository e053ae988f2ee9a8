package race

import (
	"testing"

	"uofstats/internal/config"
)

func TestNormalizeBucket(t *testing.T) {
	norm := NewNormalizer(config.Default().Races)

	tests := []struct {
		name string
		raw  string
		want Category
	}{
		{name: "canonical", raw: "black", want: Black},
		{name: "mixed_case", raw: "White", want: White},
		{name: "whitespace", raw: "  hispanic  ", want: Hispanic},
		{name: "asian_alias", raw: "asian", want: AsianPacific},
		{name: "pacific_alias", raw: "pacific islander", want: AsianPacific},
		{name: "native_long_form", raw: "american indian or alaska native", want: NativeAmerican},
		{name: "empty", raw: "", want: Unknown},
		{name: "blank", raw: "   ", want: Unknown},
		{name: "unrecognized", raw: "martian", want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := norm.Normalize(tt.raw)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			if !keep {
				t.Errorf("Normalize(%q) keep = false, want true under bucket policy", tt.raw)
			}
		})
	}
}

func TestNormalizeDrop(t *testing.T) {
	cfg := config.Default().Races
	cfg.UnknownPolicy = config.UnknownDrop
	norm := NewNormalizer(cfg)

	// Recognized values are unaffected by the policy.
	if got, keep := norm.Normalize("black"); got != Black || !keep {
		t.Errorf("Normalize(black) = %q, %v", got, keep)
	}

	// Unrecognized values are dropped.
	if _, keep := norm.Normalize("martian"); keep {
		t.Error("unrecognized value kept under drop policy")
	}

	// Empty is missing data, not an unrecognized category: always kept.
	if got, keep := norm.Normalize(""); got != Unknown || !keep {
		t.Errorf("Normalize(\"\") = %q, %v, want Unknown, true", got, keep)
	}
}

func TestRecognizedExcludesUnknown(t *testing.T) {
	for _, cat := range Recognized {
		if cat == Unknown {
			t.Fatal("Recognized must not contain Unknown")
		}
	}
	if len(All) != len(Recognized)+1 {
		t.Errorf("All has %d categories, want %d", len(All), len(Recognized)+1)
	}
	if All[len(All)-1] != Unknown {
		t.Error("All must end with Unknown")
	}
}
