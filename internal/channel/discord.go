package channel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/joebot/emotic/internal/bus"
	"github.com/joebot/emotic/internal/config"
	"github.com/joebot/emotic/internal/resolve"
)

// Discord bridges the Discord gateway to the event queue and exposes the
// send/edit/delete/presence operations the coordinator needs.
type Discord struct {
	config  config.DiscordConfig
	queue   *bus.Queue
	session *discordgo.Session

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDiscord creates the Discord transport.
func NewDiscord(cfg config.DiscordConfig, q *bus.Queue) (*Discord, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("discord bot token not configured")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	d := &Discord{config: cfg, queue: q, session: session}
	session.AddHandler(d.onMessageCreate)
	session.AddHandler(d.onMessageUpdate)
	session.AddHandler(d.onMessageDelete)
	return d, nil
}

func (d *Discord) Name() string { return "discord" }

// Start opens the gateway session and blocks until ctx is cancelled. A
// session that cannot be opened is a fatal error left to the caller; the
// process relies on external supervision to restart after session loss.
func (d *Discord) Start(ctx context.Context) error {
	d.ctx, d.cancel = context.WithCancel(ctx)

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	slog.Info("Discord session open")

	<-d.ctx.Done()
	return d.session.Close()
}

// Stop disconnects from Discord.
func (d *Discord) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
}

// Send sends a reply into a channel and returns its handle.
func (d *Discord) Send(ctx context.Context, channelID string, reply resolve.Reply) (bus.MessageRef, error) {
	data := &discordgo.MessageSend{Content: reply.Text}
	if reply.Card != nil {
		data.Embed = embed(reply.Card)
	}

	msg, err := d.session.ChannelMessageSendComplex(channelID, data, discordgo.WithContext(ctx))
	if err != nil {
		return bus.MessageRef{}, fmt.Errorf("send message: %w", err)
	}
	return bus.MessageRef{ChannelID: channelID, MessageID: msg.ID}, nil
}

// Edit replaces a previous reply's content, including clearing it entirely.
func (d *Discord) Edit(ctx context.Context, ref bus.MessageRef, reply resolve.Reply) error {
	edit := discordgo.NewMessageEdit(ref.ChannelID, ref.MessageID)
	content := reply.Text
	edit.Content = &content

	embeds := []*discordgo.MessageEmbed{}
	if reply.Card != nil {
		embeds = append(embeds, embed(reply.Card))
	}
	edit.Embeds = &embeds

	if _, err := d.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

// Delete removes a previous reply.
func (d *Discord) Delete(ctx context.Context, ref bus.MessageRef) error {
	if err := d.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// SetPresence updates the bot's game status, best effort.
func (d *Discord) SetPresence(text string) error {
	return d.session.UpdateGameStatus(0, text)
}

// Guilds reports server and member counts for the status command.
func (d *Discord) Guilds() (servers, members int) {
	for _, g := range d.session.State.Guilds {
		servers++
		members += g.MemberCount
	}
	return servers, members
}

func (d *Discord) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}
	d.queue.Publish(d.ctx, &bus.Event{Kind: bus.MessageCreated, Message: d.toMessage(m.Message)})
}

func (d *Discord) onMessageUpdate(_ *discordgo.Session, m *discordgo.MessageUpdate) {
	// Embed unfurls arrive as author-less partial updates; only real edits
	// carry the author.
	if m.Author == nil {
		return
	}
	d.queue.Publish(d.ctx, &bus.Event{Kind: bus.MessageUpdated, Message: d.toMessage(m.Message)})
}

func (d *Discord) onMessageDelete(_ *discordgo.Session, m *discordgo.MessageDelete) {
	d.queue.Publish(d.ctx, &bus.Event{Kind: bus.MessageDeleted, DeletedID: m.ID})
}

func (d *Discord) toMessage(m *discordgo.Message) bus.Message {
	return bus.Message{
		ID:          m.ID,
		ChannelID:   m.ChannelID,
		ChannelName: d.channelName(m.ChannelID),
		Content:     m.Content,
		AuthorID:    m.Author.ID,
		AuthorName:  m.Author.Username,
		AuthorBot:   m.Author.Bot,
		Direct:      m.GuildID == "",
	}
}

func (d *Discord) channelName(id string) string {
	if ch, err := d.session.State.Channel(id); err == nil && ch.Name != "" {
		return ch.Name
	}
	return id
}

func embed(card *resolve.Card) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       card.Title,
		Description: card.Body,
	}
	if card.Image != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: card.Image}
	}
	return e
}
