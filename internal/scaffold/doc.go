// Package scaffold emits the directory tree of a generated agent from
// embedded templates: the smolagents agent implementation, tool stubs,
// runner script, config, docs, and requirements list. The file set is
// fixed by the template set, so a given agent name always produces the
// same skeleton regardless of what the model decided about tool contents.
package scaffold
