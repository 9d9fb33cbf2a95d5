// Package steam wraps the two external endpoints the sync engine consumes:
// the ordered top-100 list and the per-game detail payload.
package steam

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Detail is the per-game payload returned by the detail endpoint. Tags maps
// tag name to the store's vote weight.
type Detail struct {
	AppID int64              `json:"appid"`
	Name  string             `json:"name"`
	Tags  map[string]float64 `json:"tags"`
}

// Client talks to the external ranking APIs.
type Client struct {
	http      *resty.Client
	topURL    string
	detailURL string
}

// NewClient builds a client for the given endpoints. detailURL is a prefix;
// the app id is appended per request, matching the upstream URL scheme.
func NewClient(topURL, detailURL string) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(30 * time.Second).
			SetRetryCount(2),
		topURL:    topURL,
		detailURL: detailURL,
	}
}

// TopGames fetches the ranked list of app ids. List order encodes rank,
// 1-based.
func (c *Client) TopGames(ctx context.Context) ([]int64, error) {
	var ids []int64
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&ids).
		Get(c.topURL)
	if err != nil {
		return nil, fmt.Errorf("fetch top games: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch top games: unexpected status %s", resp.Status())
	}
	return ids, nil
}

// GameDetail fetches name and tag set for a single app id.
func (c *Client) GameDetail(ctx context.Context, appid int64) (*Detail, error) {
	var detail Detail
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&detail).
		Get(c.detailURL + strconv.FormatInt(appid, 10))
	if err != nil {
		return nil, fmt.Errorf("fetch detail for %d: %w", appid, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch detail for %d: unexpected status %s", appid, resp.Status())
	}
	return &detail, nil
}
