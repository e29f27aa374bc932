// Package library tracks the metadata of books available on a device.
package library

import "github.com/inkfold/crengine/errors"

// BookMetadata identifies one book in the device library.
type BookMetadata struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
}

// Find returns the book with the given identifier.
func Find(books []BookMetadata, id string) (BookMetadata, error) {
	for _, book := range books {
		if book.Identifier == id {
			return book, nil
		}
	}
	return BookMetadata{}, errors.NotFound(errors.PhaseLibrary, "book", id)
}
