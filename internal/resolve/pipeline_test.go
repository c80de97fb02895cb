package resolve

import (
	"context"
	"testing"
)

func testPipeline() *Pipeline {
	router := NewRouter(nil)
	router.Register(&Command{Name: "!ping", Run: fixedReply("pong")})
	return NewPipeline(router, NewScanner(testStore(), nil))
}

func TestResolveCommandShortCircuitsScanner(t *testing.T) {
	p := testPipeline()

	// The emote token never gets a chance once a command matched.
	reply, ok := p.Resolve(context.Background(), "!ping #Kappa")
	if !ok || reply.Text != "pong" {
		t.Errorf("got %q ok=%v", reply.Text, ok)
	}
}

func TestResolveFallsThroughToScanner(t *testing.T) {
	p := testPipeline()

	reply, ok := p.Resolve(context.Background(), "hello #Kappa")
	if !ok || reply.Text != "http://emote.3v.fi/2.0/25.png" {
		t.Errorf("got %q ok=%v", reply.Text, ok)
	}
}

func TestResolveNothing(t *testing.T) {
	p := testPipeline()

	if _, ok := p.Resolve(context.Background(), "nothing to see here"); ok {
		t.Error("expected no reply")
	}
}
