// Package anki exports translated words as Anki CSV imports or .apkg decks.
package anki
