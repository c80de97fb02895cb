package resolve

import (
	"context"
	"log/slog"
)

// HandlerFunc runs one command. words is the full token list including the
// command token itself. Returning ok=false means the command produced no
// result and the pipeline should fall through to the token scanner; that is
// different from ok=true with an empty reply. An error degrades to a
// user-visible error reply, never a fault.
type HandlerFunc func(ctx context.Context, words []string) (Reply, bool, error)

// Command is one named action dispatched on a message's first token.
type Command struct {
	Name string
	Run  HandlerFunc
}

// Router maps the first token of a message to a command.
type Router struct {
	commands   map[string]*Command
	onDispatch func()
}

// NewRouter creates an empty router. onDispatch, if set, is invoked every
// time a message token matches a registered command, whether or not the
// handler succeeds.
func NewRouter(onDispatch func()) *Router {
	return &Router{
		commands:   make(map[string]*Command),
		onDispatch: onDispatch,
	}
}

// Register adds a command under its name and any alias names.
func (r *Router) Register(cmd *Command, aliases ...string) {
	r.commands[cmd.Name] = cmd
	for _, alias := range aliases {
		r.commands[alias] = cmd
	}
}

// Dispatch inspects the first token and runs the matching command, if any.
// A handler error is converted to an error-text reply here so upstream
// failures never propagate past the router.
func (r *Router) Dispatch(ctx context.Context, words []string) (Reply, bool) {
	if len(words) == 0 {
		return Reply{}, false
	}
	cmd, ok := r.commands[words[0]]
	if !ok {
		return Reply{}, false
	}

	if r.onDispatch != nil {
		r.onDispatch()
	}

	reply, ok, err := cmd.Run(ctx, words)
	if err != nil {
		slog.Warn("Command failed", "command", cmd.Name, "err", err)
		return TextReply("Error: " + err.Error()), true
	}
	return reply, ok
}
