// Package bulletin caches normalized marine bulletins per language and
// serves them to readers.
//
// A refresh fetches every configured language in turn, extracts and maps
// the page into the four canonical blocks, and overwrites that language's
// cache object. Readers only ever see the cache: a cold cache is reported,
// never filled on demand.
package bulletin
