// Package catalog persists replacement-part records in SQLite.
//
// A Part is addressed two ways: by its natural key (system, device, part, the
// directory triple it was imported from) and by a surrogate UUID minted once
// when the key is first seen. The UUID is what counters and fits rows hang
// off, so it must survive every re-import; Update therefore never touches it.
//
// Fits lists live in the part_fits join table and always come back
// deduplicated and sorted. Counters are created alongside their part and are
// only ever incremented.
//
// Schema changes bump schemaVersion in schema.go; opening a database written
// with a different version fails with ErrSchemaMismatch.
package catalog
