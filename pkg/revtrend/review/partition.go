package review

// Partitions groups reviews by sentiment label.
type Partitions map[Sentiment][]Review

// Partition assigns every review to exactly one bucket. Reviews without a
// label fall into Neutral.
func Partition(reviews []Review) Partitions {
	parts := Partitions{
		Positive: nil,
		Negative: nil,
		Neutral:  nil,
	}
	for _, r := range reviews {
		label := r.Sentiment
		if !label.Valid() {
			label = Neutral
		}
		parts[label] = append(parts[label], r)
	}
	return parts
}

// Counts returns the number of reviews per label.
func (p Partitions) Counts() map[Sentiment]int {
	counts := make(map[Sentiment]int, len(Sentiments))
	for _, s := range Sentiments {
		counts[s] = len(p[s])
	}
	return counts
}

// Total returns the number of reviews across all partitions.
func (p Partitions) Total() int {
	total := 0
	for _, rs := range p {
		total += len(rs)
	}
	return total
}

// Texts returns the review texts of one partition, in input order.
func (p Partitions) Texts(s Sentiment) []string {
	rs := p[s]
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Text
	}
	return out
}
