package domain

import (
	"encoding/json"
	"fmt"
)

// BookCollection names the books file.
const BookCollection = "books"

// Book is a catalogued title. ISBN is the unique key.
type Book struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publicationYear"`
	Genre           string `json:"genre"`
	CopiesAvailable int    `json:"copiesAvailable"`
}

// UniqueKey implements repository.Entity.
func (b Book) UniqueKey() string {
	return b.ISBN
}

// UnmarshalJSON accepts the numeric fields either as JSON numbers or as
// numeric strings; older data files store them as strings.
func (b *Book) UnmarshalJSON(data []byte) error {
	type plain Book
	aux := struct {
		*plain
		PublicationYear json.Number `json:"publicationYear"`
		CopiesAvailable json.Number `json:"copiesAvailable"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if b.PublicationYear, err = intField("publicationYear", aux.PublicationYear); err != nil {
		return err
	}
	if b.CopiesAvailable, err = intField("copiesAvailable", aux.CopiesAvailable); err != nil {
		return err
	}
	return nil
}

func intField(name string, n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", name, n.String())
	}
	return int(v), nil
}
