package agent

// EventType tags progress events emitted during a generation run.
type EventType string

const (
	EventText       EventType = "text"
	EventToolCall   EventType = "tool_call"
	EventToolResult EventType = "tool_result"
	EventError      EventType = "error"
	EventDone       EventType = "done"
)

// Event is pushed to the caller's emit callback as the run progresses.
type Event struct {
	Type EventType
	Data any
}
