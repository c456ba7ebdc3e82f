// Package utils provides common utility functions for locize-sync.
// It includes helpers for loose type conversion of decoded JSON values,
// the falsy rule used to decide whether a translation is present, and
// order-preserving JSON object decoding.
package utils
