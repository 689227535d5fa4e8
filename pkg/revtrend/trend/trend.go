// Package trend defines the recurring phrases surfaced for a partition.
package trend

// Trend is a phrase that survived selection and refinement, with the number
// of candidate occurrences backing it and any supporting passages.
type Trend struct {
	Text     string
	Support  int
	Evidence []string
}

// HasEvidence reports whether at least one passage supports the trend.
func (t Trend) HasEvidence() bool {
	return len(t.Evidence) > 0
}

// List is an ordered trend list. An empty list is the "no trend detected"
// sentinel: it is a valid terminal state, and downstream stages must not
// retrieve evidence or generate text for it.
type List []Trend

// None reports whether the list is the "no trend detected" sentinel.
func (l List) None() bool {
	return len(l) == 0
}

// Texts returns the trend phrases in order.
func (l List) Texts() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = t.Text
	}
	return out
}

// Clone returns a copy whose evidence slices can be replaced independently.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}
