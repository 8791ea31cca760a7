// Package tools implements the generator toolset exposed to the model:
// Space discovery and validation, web search, dependency resolution, and
// the tools that write the agent project to disk.
package tools
