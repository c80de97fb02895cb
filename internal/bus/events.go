package bus

// EventKind identifies what happened to a user message.
type EventKind int

const (
	MessageCreated EventKind = iota
	MessageUpdated
	MessageDeleted
)

// Message is a user message as seen by the resolver core.
type Message struct {
	ID          string
	ChannelID   string
	ChannelName string
	Content     string
	AuthorID    string
	AuthorName  string
	AuthorBot   bool
	Direct      bool
}

// MessageRef identifies one message the bot has sent.
type MessageRef struct {
	ChannelID string
	MessageID string
}

// Event is one inbound message event from the transport.
// Message is populated for created and updated events, DeletedID for deletes.
type Event struct {
	Kind      EventKind
	Message   Message
	DeletedID string
}
