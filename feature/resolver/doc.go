// Package resolver supplies translations for missing entries.
//
// Modes:
//
//	prompt     ask on the terminal, one line per entry
//	file       answer from a JSON document keyed by language
//	reference  copy the reference language's existing value
//	skip       never answer
//
// Every resolver treats an empty value as "skip".
package resolver
