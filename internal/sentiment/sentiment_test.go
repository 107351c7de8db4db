package sentiment

import (
	"testing"
	"testing/quick"
)

func TestClassifyAggregateWithStd(t *testing.T) {
	c := Classify(Reading{Label: "POSITIVE", Avg: Float(0.8234), Std: Float(0.0123)})
	if c.Category != Positive {
		t.Errorf("expected positive, got %s", c.Category)
	}
	if c.Magnitude != "0.823 ± 0.012" {
		t.Errorf("unexpected magnitude %q", c.Magnitude)
	}
	if c.Label != "POSITIVE" {
		t.Errorf("label should pass through, got %q", c.Label)
	}
}

func TestClassifySentenceScore(t *testing.T) {
	c := Classify(Reading{Label: "NEGATIVE", Score: Float(0.5)})
	if c.Category != Negative {
		t.Errorf("expected negative, got %s", c.Category)
	}
	if c.Magnitude != "0.500" {
		t.Errorf("unexpected magnitude %q", c.Magnitude)
	}
}

func TestClassifyNoNumbers(t *testing.T) {
	c := Classify(Reading{Label: "NEUTRAL"})
	if c.Category != Neutral {
		t.Errorf("expected neutral, got %s", c.Category)
	}
	if c.Magnitude != "" {
		t.Errorf("expected empty magnitude, got %q", c.Magnitude)
	}
	if c.Text() != "NEUTRAL" {
		t.Errorf("Text() = %q", c.Text())
	}
}

func TestClassifyAvgWithoutStd(t *testing.T) {
	c := Classify(Reading{Label: "POSITIVE", Avg: Float(0.1)})
	if c.Magnitude != "0.100" {
		t.Errorf("unexpected magnitude %q", c.Magnitude)
	}
	if c.Text() != "POSITIVE 0.100" {
		t.Errorf("Text() = %q", c.Text())
	}
}

func TestClassifyStdWithoutAvgIsIgnored(t *testing.T) {
	c := Classify(Reading{Label: "POSITIVE", Std: Float(0.2)})
	if c.Magnitude != "" {
		t.Errorf("std alone should not produce a magnitude, got %q", c.Magnitude)
	}
}

func TestClassifyAvgWinsOverScore(t *testing.T) {
	c := Classify(Reading{Label: "NEGATIVE", Avg: Float(0.25), Score: Float(0.9)})
	if c.Magnitude != "0.250" {
		t.Errorf("unexpected magnitude %q", c.Magnitude)
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		label string
		want  Category
	}{
		{"POSITIVE", Positive},
		{"NEGATIVE", Negative},
		{"NEUTRAL", Neutral},
		{"MIXED", Neutral},
		{"positive", Neutral},
		{"", Neutral},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.label); got != tt.want {
			t.Errorf("CategoryOf(%q) = %s, want %s", tt.label, got, tt.want)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	f := func(label string, avg, std, score float64, hasAvg, hasStd, hasScore bool) bool {
		r := Reading{Label: label}
		if hasAvg {
			r.Avg = &avg
		}
		if hasStd {
			r.Std = &std
		}
		if hasScore {
			r.Score = &score
		}
		a, b := Classify(r), Classify(r)
		if a != b {
			return false
		}
		if a.Label != label {
			return false
		}
		empty := !hasAvg && !hasScore
		return (a.Magnitude == "") == empty
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestAllCategories(t *testing.T) {
	cats := AllCategories()
	if len(cats) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(cats))
	}
	seen := map[Category]bool{}
	for _, c := range cats {
		seen[c] = true
	}
	for _, want := range []Category{Positive, Negative, Neutral} {
		if !seen[want] {
			t.Errorf("missing category %s", want)
		}
	}
}
