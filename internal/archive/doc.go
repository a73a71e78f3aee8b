// Package archive moves cache documents out of the way so a fresh
// learning cycle can start.
package archive
