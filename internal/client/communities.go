package client

import (
	"context"
	"net/http"
	"net/url"
)

func communityPath(id string) string {
	return "/communities/" + url.PathEscape(id)
}

func (c *Client) CreateCommunity(ctx context.Context, in CommunityInput) (Community, error) {
	var out Community
	err := c.do(ctx, http.MethodPost, "/communities", in, &out)
	return out, err
}

// GetCommunities lists the caller's communities in server order.
func (c *Client) GetCommunities(ctx context.Context) ([]Community, error) {
	var out []Community
	if err := c.do(ctx, http.MethodGet, "/communities", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Community{}
	}
	return out, nil
}

func (c *Client) UpdateCommunity(ctx context.Context, id string, in CommunityInput) (Community, error) {
	var out Community
	err := c.do(ctx, http.MethodPut, communityPath(id), in, &out)
	return out, err
}

func (c *Client) DeleteCommunity(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, communityPath(id), nil, nil)
}

func (c *Client) GetScorers(ctx context.Context, id string) (Scorers, error) {
	var out Scorers
	err := c.do(ctx, http.MethodGet, communityPath(id)+"/scorers", nil, &out)
	return out, err
}

func (c *Client) SetScorer(ctx context.Context, id, scorerType string) error {
	body := struct {
		ScorerType string `json:"scorer_type"`
	}{ScorerType: scorerType}
	return c.do(ctx, http.MethodPut, communityPath(id)+"/scorers", body, nil)
}
