// Package activity defines the campus activity record and its closed
// category sets.
//
// This package contains the data model only. Every other internal package
// imports activity; activity imports nothing internal.
//
// Key constraints:
//   - Type, Location and Organizer values always come from their fixed sets
//   - Dates are "YYYY-MM-DD" strings so lexicographic order is date order
//   - Columns is the single source of truth for field names and order
package activity
