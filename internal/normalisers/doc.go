// Package normalisers provides implementations of the Normaliser interface.
// A normaliser turns the markup of a raw dump page into plain text.
package normalisers
