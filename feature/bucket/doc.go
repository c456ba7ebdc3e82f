// Package bucket implements the translation store on S3-compatible object
// storage.
//
// Layout under the configured prefix:
//
//	locales/languages.json        optional, same shape as the locize language list
//	locales/en/common.json        nested namespace documents
//	locales/de/common.json
//
// Writes merge the resolved keys into the existing document with a JSON
// merge patch, so untouched keys survive. A key already stored flat
// ("home.title") stays flat; new keys are nested. Writes that would replace
// an existing translation or subtree are refused with ErrKeyConflict.
package bucket
