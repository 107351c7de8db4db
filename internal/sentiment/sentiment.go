package sentiment

import (
	"fmt"
	"strings"
)

// Category is the presentational bucket a sentiment label falls into.
type Category string

const (
	Positive Category = "positive"
	Negative Category = "negative"
	Neutral  Category = "neutral"
)

// Labels emitted by the analyzer.
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{Positive, Negative, Neutral}
}

func (c Category) String() string { return string(c) }

// Reading is a raw sentiment payload. Aggregate readings carry Avg and Std,
// per-sentence readings carry Score. Any numeric field may be absent.
type Reading struct {
	Label string   `json:"label"`
	Avg   *float64 `json:"avg,omitempty"`
	Std   *float64 `json:"std,omitempty"`
	Score *float64 `json:"score,omitempty"`
}

// Classification is what the presentation layer needs to draw a reading.
type Classification struct {
	Category  Category
	Label     string
	Magnitude string
}

// Text joins label and magnitude, e.g. "POSITIVE 0.823 ± 0.012".
func (c Classification) Text() string {
	if c.Magnitude == "" {
		return c.Label
	}
	if c.Label == "" {
		return c.Magnitude
	}
	return c.Label + " " + c.Magnitude
}

// Classify maps a reading to its category and display strings.
// It never fails: missing numbers yield an empty magnitude.
func Classify(r Reading) Classification {
	return Classification{
		Category:  CategoryOf(r.Label),
		Label:     r.Label,
		Magnitude: magnitude(r),
	}
}

// CategoryOf buckets a raw label. Labels other than POSITIVE and NEGATIVE
// are neutral.
func CategoryOf(label string) Category {
	switch label {
	case LabelPositive:
		return Positive
	case LabelNegative:
		return Negative
	default:
		return Neutral
	}
}

func magnitude(r Reading) string {
	switch {
	case r.Avg != nil:
		var b strings.Builder
		fmt.Fprintf(&b, "%.3f", *r.Avg)
		if r.Std != nil {
			fmt.Fprintf(&b, " ± %.3f", *r.Std)
		}
		return b.String()
	case r.Score != nil:
		return fmt.Sprintf("%.3f", *r.Score)
	default:
		return ""
	}
}

// Float returns a pointer to v, for building readings by hand.
func Float(v float64) *float64 {
	return &v
}
