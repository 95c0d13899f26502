// Package tags provides the persistence layer for the tag catalog.
//
// Tags belong to exactly one mood category. Nine defaults (three per mood)
// are seeded when a store is initialized; users add and delete more. Names
// are not unique and deleting a tag never rewrites entries, which reference
// tags by name.
//
// SQLiteRepository uses the tags table. KVRepository keeps the catalog as one
// JSON array next to an id counter. Both seed through SeedDefaults.
package tags
