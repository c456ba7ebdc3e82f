// Package extractor discovers translation keys in a source tree.
//
// It recognizes calls such as t('home.title') or i18n.t("nav.back") for a
// configurable list of function names, and i18nKey="..." attributes.
// Ignore patterns are gobwas globs matched against slash-separated paths
// relative to the root.
package extractor
