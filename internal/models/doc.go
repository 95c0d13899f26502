// Package models defines the journal data model shared by both storage
// backends: entries, tags, settings, the user profile and derived statistics.
//
// Business rules that must behave identically regardless of where data is
// stored live here rather than in the repositories: input validation, partial
// patch application, listing order, filter predicates, default records and
// the legacy reminder fallback.
package models
