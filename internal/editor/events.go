package editor

// EventType identifies the session events the shell can subscribe to.
type EventType int

const (
	EventAnnotationAdded EventType = iota
	EventAnnotationUpdated
	EventAnnotationRemoved
	EventSelectionChanged
	EventHoverChanged
	EventToolChanged
	EventViewportChanged
	EventPageChanged
	EventTextQuadsChanged
	EventNotice
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})
