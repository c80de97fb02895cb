package ledger

import (
	"sync"

	"github.com/joebot/emotic/internal/bus"
)

type entry struct {
	userMessageID string
	reply         bus.MessageRef
}

// Ledger correlates user messages with the bot replies they triggered, so
// edits and deletions of a user message can be mirrored onto the reply. It is
// a bounded in-memory record, not a durable store: the bound grows with the
// number of distinct channels recently replied in, and the oldest
// correlations are forgotten first. A missed correlation degrades to "no
// mirrored action".
type Ledger struct {
	mu       sync.Mutex
	entries  []entry
	lastSeen map[string]string // channel ID -> last replied-to message ID
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{lastSeen: make(map[string]string)}
}

// Record stores the correlation between a user message and the bot's reply
// to it, and marks the message as the channel's latest replied-to message.
// The ledger then drops its oldest entries until it holds at most twice as
// many correlations as there are distinct channels seen.
func (l *Ledger) Record(userMessageID, channelID string, reply bus.MessageRef) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastSeen[channelID] = userMessageID
	l.entries = append(l.entries, entry{userMessageID: userMessageID, reply: reply})

	max := 2 * len(l.lastSeen)
	for len(l.entries) > max {
		l.entries = l.entries[1:]
	}
}

// Lookup returns the bot reply recorded for a user message, if any.
func (l *Ledger) Lookup(userMessageID string) (bus.MessageRef, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		if e.userMessageID == userMessageID {
			return e.reply, true
		}
	}
	return bus.MessageRef{}, false
}

// Len returns the number of live correlations.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Channels returns the number of distinct channels replied in.
func (l *Ledger) Channels() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lastSeen)
}
