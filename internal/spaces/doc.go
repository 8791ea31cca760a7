// Package spaces is a small Hugging Face Hub REST client used to discover
// and validate Spaces that can back generated tools. It covers exactly the
// two calls the generator needs: free-text search and per-id lookup.
package spaces
