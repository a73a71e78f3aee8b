// Package batch reads word lists for the word translation session.
package batch
