package resolve

import (
	"context"
	"strings"
)

// Pipeline composes the command router and the token scanner. Command
// dispatch runs first; the scanner only sees messages no command answered.
type Pipeline struct {
	router  *Router
	scanner *Scanner
}

// NewPipeline creates a resolver pipeline.
func NewPipeline(router *Router, scanner *Scanner) *Pipeline {
	return &Pipeline{router: router, scanner: scanner}
}

// Resolve turns one message into at most one reply.
func (p *Pipeline) Resolve(ctx context.Context, content string) (Reply, bool) {
	words := strings.Split(content, " ")
	if reply, ok := p.router.Dispatch(ctx, words); ok {
		return reply, true
	}
	return p.scanner.Scan(words)
}
