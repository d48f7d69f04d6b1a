package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"spark/pkg/config"
	"spark/pkg/helper"
	"spark/pkg/logger"
)

// ErrDisabled는 app id 나 api key 가 설정되지 않았을 때 돌려줍니다
var ErrDisabled = errors.New("onesignal is not configured")

type Client struct {
	appID  string
	apiKey string
	url    string
	http   *http.Client
}

func NewClient(cfg config.PushConfig) *Client {
	return &Client{
		appID:  cfg.AppID,
		apiKey: cfg.APIKey,
		url:    cfg.URL,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Enabled() bool {
	return c.appID != "" && c.apiKey != ""
}

func (c *Client) Push(ctx context.Context, payload Payload) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	if len(payload.PushUserList) == 0 {
		return nil
	}

	externalIDs := helper.IntToStringArray(payload.PushUserList)

	message := PushMessage{
		AppID: c.appID,
		IncludeAliases: IncludeAliases{
			ExternalID: externalIDs,
		},
		TargetChannel: "push",
		Headings: map[string]string{
			"en": payload.Header,
		},
		Contents: map[string]string{
			"en": payload.Content,
		},
		AppUrl: payload.Url,
	}

	reqBody, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal reqBody: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", c.apiKey))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	logger.Logger.Debug().Str("header", payload.Header).Strs("users", externalIDs).Msg("notification sent")
	return nil
}
