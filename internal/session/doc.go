// Package session drives the interactive review loops: one over the caption
// lines of an episode and one over the most frequent words. Each item is
// looked up in the cache, translated on a miss, persisted, and only then shown
// to the learner, who decides whether to continue or quit.
package session
