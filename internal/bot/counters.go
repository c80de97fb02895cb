package bot

import "sync/atomic"

// Counters are process-wide monotonic counters. They reset on restart and
// feed the !bot status report only; nothing branches on them.
type Counters struct {
	Messages atomic.Int64 // inbound messages seen
	Commands atomic.Int64 // commands dispatched
	Emotes   atomic.Int64 // catalog resolutions served
}
