// Package dbstore implements the translation store on a SQL database
// through GORM (MySQL in production, SQLite for local projects).
//
// Tables:
//
//	languages     (code, name, native_name, position, reference)
//	translations  (language, namespace, translation_key, value)
//
// The (language, namespace, translation_key) triple is unique; writes upsert
// on it.
package dbstore
