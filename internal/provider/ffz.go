package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/joebot/emotic/internal/catalog"
)

const ffzEmotesURL = "http://api.frankerfacez.com/v1/set/global"

// FFZFeed fetches the FrankerFaceZ global emote sets.
type FFZFeed struct {
	url    string
	client *http.Client
}

// NewFFZFeed creates a FrankerFaceZ catalog feed.
func NewFFZFeed() *FFZFeed {
	return &FFZFeed{
		url:    ffzEmotesURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *FFZFeed) Name() string           { return "ffz" }
func (f *FFZFeed) Source() catalog.Source { return catalog.SourceFFZ }

func (f *FFZFeed) Fetch(ctx context.Context) (catalog.FeedResult, error) {
	body, err := get(ctx, f.client, f.url, nil)
	if err != nil {
		return catalog.FeedResult{}, err
	}

	var data struct {
		Sets map[string]struct {
			Emoticons []struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"emoticons"`
		} `json:"sets"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return catalog.FeedResult{}, fmt.Errorf("parse ffz emotes: %w", err)
	}

	var entries []catalog.Entry
	for _, set := range data.Sets {
		for _, em := range set.Emoticons {
			entries = append(entries, catalog.Entry{
				Code:   em.Name,
				ID:     strconv.Itoa(em.ID),
				Source: catalog.SourceFFZ,
			})
		}
	}

	return catalog.FeedResult{Entries: entries}, nil
}
