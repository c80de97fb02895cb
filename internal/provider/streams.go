package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Stream describes a live broadcast as reported by the query service.
type Stream struct {
	Live        bool
	DisplayName string
	Partner     bool
	Playlist    bool
	Title       string
	Game        string
	Viewers     int
	StartedAt   time.Time
	VideoHeight int
	FPS         float64
}

// ChannelInfo describes a channel's profile as reported by the query service.
type ChannelInfo struct {
	DisplayName string
	Partner     bool
	Title       string
	Registered  time.Time
	Followers   int
}

// StreamsClient queries an upstream stream/channel information service. The
// base URL is optional configuration; an unconfigured client reports itself
// as such so callers can degrade gracefully.
type StreamsClient struct {
	baseURL  string
	clientID string
	client   *http.Client
}

// NewStreamsClient creates a query-service client. baseURL may be empty.
func NewStreamsClient(baseURL, clientID string) *StreamsClient {
	return &StreamsClient{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		clientID: clientID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether a query-service URL was provided.
func (c *StreamsClient) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Stream looks up the current broadcast state of a channel.
func (c *StreamsClient) Stream(ctx context.Context, name string) (*Stream, error) {
	reqURL := fmt.Sprintf("%s/streams/%s?stream_type=all", c.baseURL, url.PathEscape(strings.ToLower(name)))
	body, err := get(ctx, c.client, reqURL, c.decorate)
	if err != nil {
		return nil, err
	}

	var data struct {
		Stream *struct {
			Game        string    `json:"game"`
			Viewers     int       `json:"viewers"`
			CreatedAt   time.Time `json:"created_at"`
			VideoHeight int       `json:"video_height"`
			FPS         float64   `json:"average_fps"`
			Playlist    bool      `json:"is_playlist"`
			Channel     struct {
				DisplayName string `json:"display_name"`
				Status      string `json:"status"`
				Partner     bool   `json:"partner"`
			} `json:"channel"`
		} `json:"stream"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parse stream payload: %w", err)
	}

	if data.Stream == nil {
		return &Stream{Live: false}, nil
	}
	return &Stream{
		Live:        true,
		DisplayName: data.Stream.Channel.DisplayName,
		Partner:     data.Stream.Channel.Partner,
		Playlist:    data.Stream.Playlist,
		Title:       data.Stream.Channel.Status,
		Game:        data.Stream.Game,
		Viewers:     data.Stream.Viewers,
		StartedAt:   data.Stream.CreatedAt,
		VideoHeight: data.Stream.VideoHeight,
		FPS:         data.Stream.FPS,
	}, nil
}

// Channel looks up a channel's profile.
func (c *StreamsClient) Channel(ctx context.Context, name string) (*ChannelInfo, error) {
	reqURL := fmt.Sprintf("%s/channels/%s", c.baseURL, url.PathEscape(strings.ToLower(name)))
	body, err := get(ctx, c.client, reqURL, c.decorate)
	if err != nil {
		return nil, err
	}

	var data struct {
		DisplayName string    `json:"display_name"`
		Status      string    `json:"status"`
		Partner     bool      `json:"partner"`
		CreatedAt   time.Time `json:"created_at"`
		Followers   int       `json:"followers"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parse channel payload: %w", err)
	}
	if data.DisplayName == "" {
		return nil, fmt.Errorf("channel not found")
	}

	return &ChannelInfo{
		DisplayName: data.DisplayName,
		Partner:     data.Partner,
		Title:       data.Status,
		Registered:  data.CreatedAt,
		Followers:   data.Followers,
	}, nil
}

func (c *StreamsClient) decorate(req *http.Request) {
	if c.clientID != "" {
		req.Header.Set("Client-ID", c.clientID)
	}
	req.Header.Set("Accept", "application/vnd.twitchtv.v4+json")
}
