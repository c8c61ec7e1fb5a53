// Package pathresolve turns raw catalog file references into usable
// filesystem paths. The catalog has produced several malformed encodings
// over its schema versions (percent-encoding, file:// prefixes, duplicated
// filename segments); a naive join silently corrupts a meaningful fraction
// of references, so resolution applies a layered set of defenses instead.
package pathresolve
