// Package deps resolves Python package requirements for generated agents.
// Resolution is a static lookup table of known libraries keyed by
// capability keywords; merging keeps the highest minimum version when the
// same package appears more than once.
package deps
