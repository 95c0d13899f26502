// Package entries provides the persistence layer for journal entries.
//
// # Overview
//
// The package defines a Repository interface with two implementations that
// honor the same contract:
//
//   - SQLiteRepository stores one row per entry in the entries table, with
//     tags and images encoded as JSON arrays (see models.StringList);
//   - KVRepository stores the whole collection as one JSON document in a
//     kv.Store, next to a persisted id counter.
//
// # Data Model
//
// Entries carry a caller-supplied date (YYYY-MM-DD) and time (HH:MM) that
// together define recency. Listings are ordered date descending, then time
// descending. Ids are assigned by the store and never reused after a delete.
// CreatedAt and UpdatedAt are set here, never by callers, and UpdatedAt
// strictly increases on every update.
//
// # Validation
//
// Both implementations validate input before touching storage and reject
// bad writes with an error wrapping common.ErrorValidation.
//
// # Concurrency
//
// SQLiteRepository wraps read-modify-write sequences in dbx.WithTx.
// KVRepository serializes all access with a mutex, since the store offers no
// transactions.
//
// Typical Usage
//
//	repo := entries.NewSQLiteRepository(db)
//	e, _ := repo.Create(ctx, models.EntryInput{Date: "2024-05-01", Time: "21:30", Mood: models.MoodPositive, Title: "Run"})
//	list, _ := repo.List(ctx, models.EntryFilter{StartDate: "2024-05-01"})
//	_, _ = repo.Update(ctx, e.ID, models.EntryPatch{Title: &title})
//	_ = repo.DeleteByID(ctx, e.ID)
package entries
