// Package subtitle reads SRT caption files in legacy single-byte encodings
// and turns them into the plain text lines the learner works through.
package subtitle
