package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/joebot/emotic/internal/bus"
	"github.com/joebot/emotic/internal/catalog"
	"github.com/joebot/emotic/internal/ledger"
	"github.com/joebot/emotic/internal/provider"
	"github.com/joebot/emotic/internal/resolve"
)

const commandList = "Available commands: `!bot` `!frozen pizza` `!foodporn` `!source` " +
	"`!stream <Twitch channel name>` `!channel <Twitch channel name>`"

// Transport is the chat platform as the coordinator sees it.
type Transport interface {
	Send(ctx context.Context, channelID string, reply resolve.Reply) (bus.MessageRef, error)
	Edit(ctx context.Context, ref bus.MessageRef, reply resolve.Reply) error
	Delete(ctx context.Context, ref bus.MessageRef) error
	SetPresence(text string) error
}

// SessionInfo optionally reports connection-wide stats for the status report.
type SessionInfo interface {
	Guilds() (servers, members int)
}

// Config wires a Coordinator.
type Config struct {
	Transport Transport
	Queue     *bus.Queue
	Store     *catalog.Store
	Streams   *provider.StreamsClient
	Session   SessionInfo // optional
	ClientID  string
	SourceURL string
}

// Coordinator is the per-event state machine: it consumes inbound message
// events, runs the resolver pipeline, and keeps the bot's replies in sync
// with edits and deletions through the reply ledger.
type Coordinator struct {
	transport Transport
	queue     *bus.Queue
	session   SessionInfo
	pipeline  *resolve.Pipeline
	ledger    *ledger.Ledger
	counters  Counters
	clientID  string
	startedAt time.Time
}

// New creates a coordinator and its resolver pipeline.
func New(cfg Config) *Coordinator {
	c := &Coordinator{
		transport: cfg.Transport,
		queue:     cfg.Queue,
		session:   cfg.Session,
		ledger:    ledger.New(),
		clientID:  cfg.ClientID,
		startedAt: time.Now(),
	}

	router := resolve.NewRouter(func() { c.counters.Commands.Add(1) })
	resolve.RegisterBuiltins(router, resolve.CommandDeps{
		Streams:   cfg.Streams,
		Status:    c.statusReport,
		SourceURL: cfg.SourceURL,
	})
	scanner := resolve.NewScanner(cfg.Store, func() { c.counters.Emotes.Add(1) })
	c.pipeline = resolve.NewPipeline(router, scanner)

	return c
}

// Pipeline exposes the resolver pipeline, mainly for the local REPL.
func (c *Coordinator) Pipeline() *resolve.Pipeline {
	return c.pipeline
}

// Run consumes events from the queue until ctx is cancelled. A failing
// transport call never stops the loop.
func (c *Coordinator) Run(ctx context.Context) {
	slog.Info("Event coordinator started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("Event coordinator stopped")
			return
		case ev := <-c.queue.Events:
			c.Handle(ctx, ev)
		}
	}
}

// Handle processes a single inbound event.
func (c *Coordinator) Handle(ctx context.Context, ev *bus.Event) {
	switch ev.Kind {
	case bus.MessageCreated:
		c.onCreated(ctx, ev.Message)
	case bus.MessageUpdated:
		c.onUpdated(ctx, ev.Message)
	case bus.MessageDeleted:
		c.onDeleted(ctx, ev.DeletedID)
	}
}

func (c *Coordinator) onCreated(ctx context.Context, msg bus.Message) {
	c.counters.Messages.Add(1)
	if msg.AuthorBot {
		return
	}
	slog.Info("Message received", "channel", msg.ChannelName, "author", msg.AuthorName)

	if msg.Direct {
		invite := fmt.Sprintf("Add me to a server/guild: https://discord.com/oauth2/authorize?client_id=%s&scope=bot&permissions=19456", c.clientID)
		if _, err := c.transport.Send(ctx, msg.ChannelID, resolve.TextReply(invite)); err != nil {
			slog.Error("Invite reply failed", "err", err)
		}
		return
	}

	reply, ok := c.pipeline.Resolve(ctx, msg.Content)
	if !ok {
		return
	}
	c.sendReply(ctx, msg, reply)
}

func (c *Coordinator) onUpdated(ctx context.Context, msg bus.Message) {
	if msg.AuthorBot || msg.Direct {
		return
	}
	slog.Info("Message updated", "channel", msg.ChannelName, "author", msg.AuthorName)

	reply, ok := c.pipeline.Resolve(ctx, msg.Content)

	if ref, found := c.ledger.Lookup(msg.ID); found {
		// Mirror the edit onto the existing reply, clearing it when the
		// edited message no longer resolves.
		if err := c.transport.Edit(ctx, ref, reply); err != nil {
			slog.Error("Reply edit failed", "message", ref.MessageID, "err", err)
		}
		return
	}
	if ok {
		c.sendReply(ctx, msg, reply)
	}
}

func (c *Coordinator) onDeleted(ctx context.Context, messageID string) {
	ref, found := c.ledger.Lookup(messageID)
	if !found {
		return
	}
	if err := c.transport.Delete(ctx, ref); err != nil {
		slog.Error("Reply delete failed", "message", ref.MessageID, "err", err)
	}
}

func (c *Coordinator) sendReply(ctx context.Context, msg bus.Message, reply resolve.Reply) {
	ref, err := c.transport.Send(ctx, msg.ChannelID, reply)
	if err != nil {
		slog.Error("Reply send failed", "channel", msg.ChannelName, "err", err)
		return
	}
	c.ledger.Record(msg.ID, msg.ChannelID, ref)
}

func (c *Coordinator) statusReport() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	servers, members := 0, 0
	if c.session != nil {
		servers, members = c.session.Guilds()
	}

	uptime := time.Since(c.startedAt)
	return fmt.Sprintf("Serving %d users on %d servers.\n", members, servers) +
		fmt.Sprintf("Memory usage is %d KB\n", m.Alloc/1024) +
		fmt.Sprintf("Uptime %d days, %d hours\n", int(uptime.Hours())/24, int(uptime.Hours())%24) +
		fmt.Sprintf("Messages seen: %d, commands: %d, emotes served: %d\n",
			c.counters.Messages.Load(), c.counters.Commands.Load(), c.counters.Emotes.Load()) +
		commandList
}
