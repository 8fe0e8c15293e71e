package manager

// Event names published by the manager.
const (
	EventGenerationStart     = "generation_start"
	EventGenerationEnd       = "generation_end"
	EventGenerationFailed    = "generation_failed"
	EventGenerationAbandoned = "generation_abandoned"
	EventCleanupFailed       = "cleanup_failed"
)

// Event represents a manager lifecycle event.
// Minimal and stable: name + model name and optional fields via key/values.
type Event struct {
	Name   string
	Model  string
	Fields map[string]any
}

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
