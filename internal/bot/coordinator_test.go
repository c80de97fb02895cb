package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/joebot/emotic/internal/bus"
	"github.com/joebot/emotic/internal/catalog"
	"github.com/joebot/emotic/internal/resolve"
)

type sentReply struct {
	channelID string
	reply     resolve.Reply
}

type editedReply struct {
	ref   bus.MessageRef
	reply resolve.Reply
}

type fakeTransport struct {
	sends   []sentReply
	edits   []editedReply
	deletes []bus.MessageRef
	sendErr error
	nextID  int
}

func (t *fakeTransport) Send(_ context.Context, channelID string, reply resolve.Reply) (bus.MessageRef, error) {
	if t.sendErr != nil {
		return bus.MessageRef{}, t.sendErr
	}
	t.nextID++
	t.sends = append(t.sends, sentReply{channelID: channelID, reply: reply})
	return bus.MessageRef{ChannelID: channelID, MessageID: fmt.Sprintf("bot-%d", t.nextID)}, nil
}

func (t *fakeTransport) Edit(_ context.Context, ref bus.MessageRef, reply resolve.Reply) error {
	t.edits = append(t.edits, editedReply{ref: ref, reply: reply})
	return nil
}

func (t *fakeTransport) Delete(_ context.Context, ref bus.MessageRef) error {
	t.deletes = append(t.deletes, ref)
	return nil
}

func (t *fakeTransport) SetPresence(string) error { return nil }

func testCoordinator(ft *fakeTransport) *Coordinator {
	store := catalog.NewStore()
	store.Replace(&catalog.Snapshot{Entries: []catalog.Entry{
		{Code: "Kappa", ID: "25", Source: catalog.SourceTwitch, Set: 0},
	}})
	return New(Config{
		Transport: ft,
		Queue:     bus.NewQueue(),
		Store:     store,
		ClientID:  "12345",
		SourceURL: "https://example.com/src",
	})
}

func created(id, content string) *bus.Event {
	return &bus.Event{Kind: bus.MessageCreated, Message: bus.Message{
		ID: id, ChannelID: "chan", ChannelName: "general", Content: content,
		AuthorID: "u1", AuthorName: "user",
	}}
}

func updated(id, content string) *bus.Event {
	ev := created(id, content)
	ev.Kind = bus.MessageUpdated
	return ev
}

func TestCreatedRepliesAndRecords(t *testing.T) {
	ft := &fakeTransport{}
	c := testCoordinator(ft)
	ctx := context.Background()

	c.Handle(ctx, created("m1", "#Kappa"))

	if len(ft.sends) != 1 {
		t.Fatalf("got %d sends, want 1", len(ft.sends))
	}
	if ft.sends[0].reply.Text != "http://emote.3v.fi/2.0/25.png" {
		t.Errorf("reply: %q", ft.sends[0].reply.Text)
	}

	// Deleting the user message removes the recorded reply.
	c.Handle(ctx, &bus.Event{Kind: bus.MessageDeleted, DeletedID: "m1"})
	if len(ft.deletes) != 1 || ft.deletes[0].MessageID != "bot-1" {
		t.Errorf("deletes: %+v", ft.deletes)
	}
}

func TestCreatedNoResolveNoReply(t *testing.T) {
	ft := &fakeTransport{}
	c := testCoordinator(ft)

	c.Handle(context.Background(), created("m1", "nothing interesting"))
	if len(ft.sends) != 0 {
		t.Errorf("got %d sends, want 0", len(ft.sends))
	}
}

func TestCreatedIgnoresBots(t *testing.T) {
	ft := &fakeTransport{}
	c := testCoordinator(ft)

	ev := created("m1", "#Kappa")
	ev.Message.AuthorBot = true
	c.Handle(context.Background(), ev)

	if len(ft.sends) != 0 {
		t.Error("bot messages must never get a reply")
	}
}

func TestDirectMessageGetsInvite(t *testing.T) {
	ft := &fakeTransport{}
	c := testCoordinator(ft)

	ev := created("m1", "#Kappa")
	ev.Message.Direct = true
	c.Handle(context.Background(), ev)

	if len(ft.sends) != 1 {
		t.Fatalf("got %d sends, want 1", len(ft.sends))
	}
	if !strings.Contains(ft.sends[0].reply.Text, "client_id=12345") {
		t.Errorf("invite text: %q", ft.sends[0].reply.Text)
	}
}

func TestUpdatedEditsRecordedReply(t *testing.T) {
	ft := &fakeTransport{}
	c := testCoordinator(ft)
	ctx := context.Background()

	c.Handle(ctx, created("m1", "#Kappa"))
	c.Handle(ctx, updated("m1", "now it says 10 C"))

	if len(ft.edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(ft.edits))
	}
	if ft.edits[0].ref.MessageID != "bot-1" {
		t.Errorf("edited ref: %+v", ft.edits[0].ref)
	}
	if ft.edits[0].reply.Card == nil {
		t.Error("edit should carry the re-resolved reply")
	}
	if len(ft.sends) != 1 {
		t.Error("an edit must not send a second reply")
	}
}

func TestUpdatedClearsWhenNoLongerResolving(t *testing.T) {
	ft := &fakeTransport{}
	c := testCoordinator(ft)
	ctx := context.Background()

	c.Handle(ctx, created("m1", "#Kappa"))
	c.Handle(ctx, updated("m1", "typo fixed, no emote now"))

	if len(ft.edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(ft.edits))
	}
	if !ft.edits[0].reply.Empty() {
		t.Errorf("edit should clear the reply, got %+v", ft.edits[0].reply)
	}
}

func TestUpdatedWithoutRecordSendsNew(t *testing.T) {
	ft := &fakeTransport{}
	c := testCoordinator(ft)

	c.Handle(context.Background(), updated("m1", "#Kappa"))

	if len(ft.edits) != 0 {
		t.Error("no recorded reply to edit")
	}
	if len(ft.sends) != 1 {
		t.Errorf("got %d sends, want 1", len(ft.sends))
	}
}

func TestDeletedWithoutRecordIsNoop(t *testing.T) {
	ft := &fakeTransport{}
	c := testCoordinator(ft)

	c.Handle(context.Background(), &bus.Event{Kind: bus.MessageDeleted, DeletedID: "never-replied"})
	if len(ft.deletes) != 0 {
		t.Error("nothing recorded, nothing to delete")
	}
}

func TestSendFailureNotRecorded(t *testing.T) {
	ft := &fakeTransport{sendErr: errors.New("rate limited")}
	c := testCoordinator(ft)
	ctx := context.Background()

	c.Handle(ctx, created("m1", "#Kappa"))
	c.Handle(ctx, &bus.Event{Kind: bus.MessageDeleted, DeletedID: "m1"})

	if len(ft.deletes) != 0 {
		t.Error("a failed send must leave no correlation behind")
	}
}

func TestStatusReportCounters(t *testing.T) {
	ft := &fakeTransport{}
	c := testCoordinator(ft)
	ctx := context.Background()

	c.Handle(ctx, created("m1", "#Kappa"))
	c.Handle(ctx, created("m2", "just chatting"))
	c.Handle(ctx, created("m3", "!bot"))

	report := c.statusReport()
	if !strings.Contains(report, "Messages seen: 3, commands: 1, emotes served: 1") {
		t.Errorf("report counters wrong:\n%s", report)
	}
	if !strings.Contains(report, "Serving 0 users on 0 servers") {
		t.Errorf("report should handle a missing session:\n%s", report)
	}
	if !strings.Contains(report, "`!bot`") {
		t.Errorf("report should list commands:\n%s", report)
	}
}
