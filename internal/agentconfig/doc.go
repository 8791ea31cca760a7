// Package agentconfig defines the agent_config.json document written into
// every generated agent: the model id, system prompt, allowed imports, and
// the tool entries the agent is wired with. It provides JSON read/write
// helpers and schema validation against the embedded JSON Schema.
package agentconfig
