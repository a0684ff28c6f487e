package repository

import "github.com/google/uuid"

// ListFilter is the shared listing predicate for the four content tables.
// Zero values mean "no constraint".
type ListFilter struct {
	Search        string
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
	Level         string
	Province      string
	Year          int
	Offset        int
	Limit         int
}
