package resolve

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joebot/emotic/internal/provider"
)

func builtinsRouter(onDispatch func()) *Router {
	r := NewRouter(onDispatch)
	RegisterBuiltins(r, CommandDeps{
		Streams:   provider.NewStreamsClient("", ""),
		Status:    func() string { return "all good" },
		SourceURL: "https://example.com/src",
	})
	return r
}

func dispatch(t *testing.T, r *Router, content string) (Reply, bool) {
	t.Helper()
	return r.Dispatch(context.Background(), strings.Split(content, " "))
}

func TestDispatchUnknownFallsThrough(t *testing.T) {
	r := builtinsRouter(nil)
	if _, ok := dispatch(t, r, "!unknown stuff"); ok {
		t.Error("unknown command should fall through")
	}
	if _, ok := dispatch(t, r, "plain message"); ok {
		t.Error("a non-command message should fall through")
	}
}

func TestFrozenPizza(t *testing.T) {
	r := builtinsRouter(nil)

	reply, ok := dispatch(t, r, "!frozen pizza")
	if !ok || reply.Text != "*starts making a frozen pizza*" {
		t.Errorf("got %q ok=%v", reply.Text, ok)
	}

	if reply, ok := dispatch(t, r, "!frozen"); !ok || reply.Text == "" {
		t.Error("bare !frozen should still fire")
	}

	if _, ok := dispatch(t, r, "!frozen lasagna"); ok {
		t.Error("!frozen with a non-pizza filter should fall through")
	}

	// The alias ignores the filter.
	if _, ok := dispatch(t, r, "!frozenpizza lasagna"); !ok {
		t.Error("!frozenpizza should always fire")
	}
}

func TestSourceCommand(t *testing.T) {
	r := builtinsRouter(nil)
	reply, ok := dispatch(t, r, "!source")
	if !ok || reply.Text != "https://example.com/src" {
		t.Errorf("got %q ok=%v", reply.Text, ok)
	}
}

func TestBotCommand(t *testing.T) {
	r := builtinsRouter(nil)
	reply, ok := dispatch(t, r, "!bot")
	if !ok || reply.Text != "all good" {
		t.Errorf("got %q ok=%v", reply.Text, ok)
	}
}

func TestStreamUsage(t *testing.T) {
	r := builtinsRouter(nil)
	reply, ok := dispatch(t, r, "!stream")
	if !ok || !strings.Contains(reply.Text, "Usage") {
		t.Errorf("got %q ok=%v", reply.Text, ok)
	}
}

func TestStreamUnconfiguredApologizes(t *testing.T) {
	r := builtinsRouter(nil)

	reply, ok := dispatch(t, r, "!stream somechannel")
	if !ok || !strings.Contains(reply.Text, "not available") {
		t.Errorf("got %q ok=%v", reply.Text, ok)
	}
	reply, ok = dispatch(t, r, "!channel somechannel")
	if !ok || !strings.Contains(reply.Text, "not available") {
		t.Errorf("got %q ok=%v", reply.Text, ok)
	}
}

func TestDispatchErrorBecomesErrorReply(t *testing.T) {
	r := NewRouter(nil)
	r.Register(&Command{Name: "!boom", Run: func(context.Context, []string) (Reply, bool, error) {
		return Reply{}, false, errors.New("upstream exploded")
	}})

	reply, ok := dispatch(t, r, "!boom")
	if !ok {
		t.Fatal("a failing command still answers")
	}
	if reply.Text != "Error: upstream exploded" {
		t.Errorf("got %q", reply.Text)
	}
}

func TestDispatchCountsMatches(t *testing.T) {
	dispatched := 0
	r := builtinsRouter(func() { dispatched++ })

	dispatch(t, r, "!bot")
	dispatch(t, r, "!frozen lasagna") // matched, then fell through
	dispatch(t, r, "not a command")

	if dispatched != 2 {
		t.Errorf("got %d dispatches, want 2", dispatched)
	}
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0, "0 days 00:00:00"},
		{25.5, "1 day 01:30:00"},
		{49, "2 days 01:00:00"},
	}
	for _, tc := range cases {
		got := formatUptime(time.Duration(tc.hours * float64(time.Hour)))
		if got != tc.want {
			t.Errorf("%v hours: got %q, want %q", tc.hours, got, tc.want)
		}
	}
}

func TestEscapeBold(t *testing.T) {
	if got := escapeBold("a*b*c"); got != `a\*b\*c` {
		t.Errorf("got %q", got)
	}
}
