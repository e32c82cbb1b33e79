// Package backups stores encoded editor backup records by key.
//
// SQLiteRepository persists them in the client database (table "backups",
// created by the client migrations) over a dbx.DBTX. MemoryRepository keeps
// them in process memory for tests and throwaway sessions. Both return
// (nil, nil) from Get for a missing key.
package backups
