package events

import "context"

// Event types
const (
	EventRunStatusChanged = "run_status_changed"
	EventContentGenerated = "content_generated"
)

// StreamRuns is the pub/sub channel carrying pipeline progress.
const StreamRuns = "events:run"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
