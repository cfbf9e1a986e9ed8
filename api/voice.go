package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"rechord-client/models"
)

// LikeVoice records a like for voice id on behalf of clientID.
func (c *Client) LikeVoice(ctx context.Context, voiceID, clientID int64, token string) error {
	return c.react(ctx, "like voice", fmt.Sprintf("voices/%d/like", voiceID), clientID, token)
}

// UnlikeVoice removes a like for voice id on behalf of clientID.
func (c *Client) UnlikeVoice(ctx context.Context, voiceID, clientID int64, token string) error {
	return c.react(ctx, "unlike voice", fmt.Sprintf("voices/%d/unlike", voiceID), clientID, token)
}

func (c *Client) react(ctx context.Context, op, path string, clientID int64, token string) error {
	form := url.Values{}
	form.Set("client_id", models.FormatClientID(clientID))

	req, err := c.newRequest(ctx, http.MethodPost, path, token, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return newRequestError(op, 0, err)
	}

	_, err = c.do(op, req)
	return err
}
