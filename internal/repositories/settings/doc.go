// Package settings persists the two singleton records of the journal: the
// application settings and the user profile.
//
// # Data Model
//
// Settings exist in two shapes. The legacy shape has a single
// notification_time and the notification_enabled flag; the extended shape
// adds a list of reminders. Both implementations read either shape and
// synthesize one every-day reminder from a legacy record (see
// models.ResolveReminders). Any write stores the extended shape.
//
// A reminder list that cannot be decoded is logged as a warning and treated
// as absent, so a damaged record degrades to the legacy reminder instead of
// failing every read.
//
// # Implementations
//
//   - SQLiteRepository: tables settings and user_profile, row id fixed to 1,
//     reminders as a JSON text column;
//   - KVRepository: JSON documents under the settings and profile keys.
package settings
