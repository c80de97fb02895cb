package resolve

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/joebot/emotic/internal/provider"
)

const (
	galleryPageURL = "http://foodporndaily.com/explore/food/page/%d/"
	pizzaReply     = "*starts making a frozen pizza*"
	apologyReply   = "Sorry, stream lookups are not available right now."
)

var reImgSrc = regexp.MustCompile(`(?is)<img[^>]*?src\s*=\s*["']?([^'" >]+?)[ '"][^>]*?>`)

// CommandDeps are the collaborators the built-in commands call out to.
type CommandDeps struct {
	// Streams is the optional upstream query service for !stream and
	// !channel. When it is unconfigured both commands degrade to an apology.
	Streams *provider.StreamsClient

	// Status renders the !bot status report.
	Status func() string

	// SourceURL is the project link replied by !source.
	SourceURL string

	// Gallery is the HTTP client used by !foodporn. Defaults to a client
	// with a 30s timeout.
	Gallery *http.Client
}

// RegisterBuiltins wires the bot's command set into a router.
func RegisterBuiltins(r *Router, deps CommandDeps) {
	if deps.Gallery == nil {
		deps.Gallery = &http.Client{Timeout: 30 * time.Second}
	}

	r.Register(&Command{Name: "!stream", Run: streamCommand(deps.Streams)})
	r.Register(&Command{Name: "!channel", Run: channelCommand(deps.Streams)})
	r.Register(&Command{Name: "!source", Run: fixedReply(deps.SourceURL)})
	r.Register(&Command{Name: "!frozen", Run: pizzaCommand}, "!frozenpizza")
	r.Register(&Command{Name: "!bot", Run: statusCommand(deps.Status)})
	r.Register(&Command{Name: "!foodporn", Run: galleryCommand(deps.Gallery)})
}

func streamCommand(streams *provider.StreamsClient) HandlerFunc {
	return func(ctx context.Context, words []string) (Reply, bool, error) {
		if len(words) < 2 {
			return TextReply("**Usage:** !stream channel"), true, nil
		}
		if !streams.Configured() {
			return TextReply(apologyReply), true, nil
		}

		st, err := streams.Stream(ctx, words[1])
		if err != nil {
			return Reply{}, false, err
		}
		if !st.Live {
			return TextReply("The channel is currently *offline*"), true, nil
		}

		playlist := ""
		if st.Playlist {
			playlist = "(Playlist)"
		}
		text := "**[" + st.DisplayName + "]**" + partnerMark(st.Partner) + " " + playlist +
			"\n**Title**: " + escapeBold(st.Title) +
			"\n**Game:** " + st.Game +
			fmt.Sprintf("\n**Viewers**: %d", st.Viewers) +
			"\n**Uptime**: " + formatUptime(time.Since(st.StartedAt)) +
			fmt.Sprintf("\n**Quality**: %dp%.0f", st.VideoHeight, math.Ceil(st.FPS))
		return TextReply(text), true, nil
	}
}

func channelCommand(streams *provider.StreamsClient) HandlerFunc {
	return func(ctx context.Context, words []string) (Reply, bool, error) {
		if len(words) < 2 {
			return TextReply("**Usage:** !channel channel"), true, nil
		}
		if !streams.Configured() {
			return TextReply(apologyReply), true, nil
		}

		ch, err := streams.Channel(ctx, words[1])
		if err != nil {
			return Reply{}, false, err
		}

		text := "**[" + ch.DisplayName + "]**" +
			"\n**Partner**: " + yesNo(ch.Partner) +
			"\n**Title**: " + escapeBold(ch.Title) +
			"\n**Registered**: " + ch.Registered.UTC().Format("2006-01-02 15:04") + " UTC" +
			fmt.Sprintf("\n**Followers**: %d", ch.Followers)
		return TextReply(text), true, nil
	}
}

func fixedReply(text string) HandlerFunc {
	return func(context.Context, []string) (Reply, bool, error) {
		return TextReply(text), true, nil
	}
}

// pizzaCommand is one command with an optional filter argument. Invoked as
// !frozen it only fires when the filter is absent or "pizza"; the
// !frozenpizza alias always fires.
func pizzaCommand(_ context.Context, words []string) (Reply, bool, error) {
	if words[0] == "!frozen" && len(words) > 1 && words[1] != "pizza" {
		return Reply{}, false, nil
	}
	return TextReply(pizzaReply), true, nil
}

func statusCommand(status func() string) HandlerFunc {
	return func(context.Context, []string) (Reply, bool, error) {
		return TextReply(status()), true, nil
	}
}

func galleryCommand(client *http.Client) HandlerFunc {
	return func(ctx context.Context, words []string) (Reply, bool, error) {
		page := rand.IntN(9) + 1
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf(galleryPageURL, page), nil)
		if err != nil {
			return Reply{}, false, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return Reply{}, false, fmt.Errorf("could not get the image: %w", err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return Reply{}, false, fmt.Errorf("could not get the image: %w", err)
		}

		matches := reImgSrc.FindAllStringSubmatch(string(body), -1)
		if len(matches) < 2 {
			return Reply{}, false, fmt.Errorf("no images found on gallery page %d", page)
		}
		pick := matches[rand.IntN(len(matches)-1)+1]
		return TextReply(pick[1]), true, nil
	}
}

func partnerMark(partner bool) string {
	if partner {
		return `\*`
	}
	return ""
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func escapeBold(s string) string {
	return strings.ReplaceAll(s, "*", `\*`)
}

func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	plural := "s"
	if days == 1 {
		plural = ""
	}
	return fmt.Sprintf("%d day%s %02d:%02d:%02d",
		days, plural, int(d.Hours())%24, int(d.Minutes())%60, int(d.Seconds())%60)
}
