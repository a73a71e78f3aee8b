// Package vocab turns subtitle lines into normalized words and ranks them by
// how often they occur.
package vocab
