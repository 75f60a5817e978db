// Package app is the root package of all domain related packages.
//
// All entity types are defined in this package.
package app

import (
	"errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound is returned when a requested object does not exist.
var ErrNotFound = errors.New("object not found")

// Titler converts a string into a title for english language.
var Titler = cases.Title(language.English)
