package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/joebot/emotic/internal/catalog"
)

const twitchEmotesURL = "https://api.twitch.tv/kraken/chat/emoticon_images"

// TwitchFeed fetches the Twitch emoticon dataset.
type TwitchFeed struct {
	url      string
	clientID string
	client   *http.Client
}

// NewTwitchFeed creates a Twitch catalog feed.
func NewTwitchFeed(clientID string) *TwitchFeed {
	return &TwitchFeed{
		url:      twitchEmotesURL,
		clientID: clientID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *TwitchFeed) Name() string           { return "twitch" }
func (f *TwitchFeed) Source() catalog.Source { return catalog.SourceTwitch }

// Fetch downloads and parses the Twitch emoticon list. Entries are pre-sorted
// so that global emote sets land at the end of the list.
func (f *TwitchFeed) Fetch(ctx context.Context) (catalog.FeedResult, error) {
	body, err := get(ctx, f.client, f.url, func(req *http.Request) {
		req.Header.Set("Client-ID", f.clientID)
		req.Header.Set("Accept", "application/vnd.twitchtv.v4+json")
	})
	if err != nil {
		return catalog.FeedResult{}, err
	}

	var data struct {
		Emoticons []struct {
			ID   int    `json:"id"`
			Code string `json:"code"`
			Set  *int   `json:"emoticon_set"`
		} `json:"emoticons"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return catalog.FeedResult{}, fmt.Errorf("parse twitch emotes: %w", err)
	}

	entries := make([]catalog.Entry, 0, len(data.Emoticons))
	for _, em := range data.Emoticons {
		set := 0
		if em.Set != nil {
			set = *em.Set
		}
		entries = append(entries, catalog.Entry{
			Code:   em.Code,
			ID:     strconv.Itoa(em.ID),
			Source: catalog.SourceTwitch,
			Set:    set,
		})
	}
	sortGlobalsLast(entries)

	return catalog.FeedResult{Entries: entries}, nil
}

// sortGlobalsLast orders entries by ascending set number with the reserved
// global sets after everything else. Ties keep their incoming order.
func sortGlobalsLast(entries []catalog.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Set == b.Set {
			return false
		}
		if a.Global() {
			return false
		}
		if b.Global() {
			return true
		}
		return a.Set < b.Set
	})
}

// get performs a GET request with an optional header hook and returns the
// response body. Non-2xx statuses are errors.
func get(ctx context.Context, client *http.Client, url string, decorate func(*http.Request)) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	if decorate != nil {
		decorate(req)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request %s: HTTP %d", url, resp.StatusCode)
	}
	return body, nil
}
