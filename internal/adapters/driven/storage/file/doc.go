// Package file provides a JSON file implementation of driven.StateStore.
//
// State lives in a directory outside the mirrored categories so that
// staging a category never picks it up:
//
//	<dir>/<category>/tasks       tally as [{"pageid":..,"revid":..}, ...]
//	<dir>/revision_timestamp     last processed timestamp as a JSON string
//
// Files are replaced atomically through a temporary file and a rename.
package file
