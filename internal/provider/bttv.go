package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/joebot/emotic/internal/catalog"
)

const bttvEmotesURL = "https://api.betterttv.net/2/emotes"

// BTTVFeed fetches the BetterTTV emote dataset. BTTV also publishes the URL
// template used to build image URLs for its entries.
type BTTVFeed struct {
	url    string
	client *http.Client
}

// NewBTTVFeed creates a BetterTTV catalog feed.
func NewBTTVFeed() *BTTVFeed {
	return &BTTVFeed{
		url:    bttvEmotesURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *BTTVFeed) Name() string           { return "bttv" }
func (f *BTTVFeed) Source() catalog.Source { return catalog.SourceBTTV }

func (f *BTTVFeed) Fetch(ctx context.Context) (catalog.FeedResult, error) {
	body, err := get(ctx, f.client, f.url, nil)
	if err != nil {
		return catalog.FeedResult{}, err
	}

	var data struct {
		Template string `json:"urlTemplate"`
		Emotes   []struct {
			ID   string `json:"id"`
			Code string `json:"code"`
		} `json:"emotes"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return catalog.FeedResult{}, fmt.Errorf("parse bttv emotes: %w", err)
	}
	if data.Template == "" {
		return catalog.FeedResult{}, fmt.Errorf("bttv payload missing url template")
	}

	entries := make([]catalog.Entry, 0, len(data.Emotes))
	for _, em := range data.Emotes {
		entries = append(entries, catalog.Entry{
			Code:   em.Code,
			ID:     em.ID,
			Source: catalog.SourceBTTV,
		})
	}

	return catalog.FeedResult{Entries: entries, ImageTemplate: data.Template}, nil
}
