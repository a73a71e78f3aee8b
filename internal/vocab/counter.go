package vocab

import (
	"sort"
)

// TopN is the number of entries kept in a frequency ranking
const TopN = 100

// WordCount is one entry of a frequency ranking
type WordCount struct {
	Word  string
	Count int
}

// Counter tallies normalized words in first-seen order
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter creates an empty counter
func NewCounter() *Counter {
	return &Counter{
		counts: make(map[string]int),
	}
}

// AddLine tokenizes line and counts each word
func (c *Counter) AddLine(line string) {
	for _, word := range Tokens(line) {
		if _, seen := c.counts[word]; !seen {
			c.order = append(c.order, word)
		}
		c.counts[word]++
	}
}

// AddLines counts every line
func (c *Counter) AddLines(lines []string) {
	for _, line := range lines {
		c.AddLine(line)
	}
}

// Unique returns the number of distinct words seen so far
func (c *Counter) Unique() int {
	return len(c.order)
}

// MostCommon returns up to n entries sorted by descending count. Words with
// equal counts keep the order in which they were first seen.
func (c *Counter) MostCommon(n int) []WordCount {
	ranked := make([]WordCount, 0, len(c.order))
	for _, word := range c.order {
		ranked = append(ranked, WordCount{Word: word, Count: c.counts[word]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Count ranks the words of lines and keeps the TopN most frequent
func Count(lines []string) []WordCount {
	c := NewCounter()
	c.AddLines(lines)
	return c.MostCommon(TopN)
}
