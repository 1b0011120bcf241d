/*
Package table resolves numeric ids to named fields, typically image paths
and classification tags.

Tables are either CSV files with a header row containing an ID column, or
the same data imported into a SQLite database.
*/
package table

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when the id or the field does not exist.
var ErrNotFound = errors.New("table: not found")

// Reader looks up a single field of the row identified by id.
type Reader interface {
	Lookup(id int, field string) (string, error)
}

// ContainsWord reports whether word appears as a whole space-delimited token
// in s. An empty word never matches.
func ContainsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for _, token := range strings.Split(s, " ") {
		if token == word {
			return true
		}
	}
	return false
}
