// Package messenger sends outbound messages through the Facebook Graph API.
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"exterior_chat_backend/platform/config"
	"exterior_chat_backend/platform/logger"
)

// Client talks to the Graph API messages endpoint. A nil client drops all
// sends, which keeps local development working without page credentials.
type Client struct {
	baseURL     string
	accessToken string
	http        *http.Client
	log         *logger.Logger
}

type recipient struct {
	ID string `json:"id"`
}

type textMessage struct {
	Text string `json:"text"`
}

type sendRequest struct {
	Recipient recipient   `json:"recipient"`
	Message   interface{} `json:"message"`
}

type buttonMessage struct {
	Attachment attachment `json:"attachment"`
}

type attachment struct {
	Type    string         `json:"type"`
	Payload templatePayload `json:"payload"`
}

type templatePayload struct {
	TemplateType string      `json:"template_type"`
	Text         string      `json:"text"`
	Buttons      []urlButton `json:"buttons"`
}

type urlButton struct {
	Type  string `json:"type"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// NewClient builds a Graph API client, or nil when no page token is
// configured.
func NewClient(cfg config.MessengerConfig, log *logger.Logger) *Client {
	if cfg.GetPageAccessToken() == "" {
		return nil
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.GetGraphAPIBaseURL(), "/"),
		accessToken: cfg.GetPageAccessToken(),
		http:        &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

// SendText delivers a plain text reply to the recipient.
func (c *Client) SendText(ctx context.Context, recipientID, text string) error {
	if c == nil {
		return nil
	}
	return c.send(ctx, sendRequest{
		Recipient: recipient{ID: recipientID},
		Message:   textMessage{Text: text},
	})
}

// SendBookingPrompt delivers a button template pointing at the booking page.
func (c *Client) SendBookingPrompt(ctx context.Context, recipientID, bookingURL, label string) error {
	if c == nil {
		return nil
	}
	return c.send(ctx, sendRequest{
		Recipient: recipient{ID: recipientID},
		Message: buttonMessage{
			Attachment: attachment{
				Type: "template",
				Payload: templatePayload{
					TemplateType: "button",
					Text:         label,
					Buttons: []urlButton{
						{Type: "web_url", URL: bookingURL, Title: label},
					},
				},
			},
		},
	})
}

func (c *Client) send(ctx context.Context, payload sendRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal messenger payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/me/messages?access_token=%s", c.baseURL, url.QueryEscape(c.accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("messenger request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("graph api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	c.log.Info("messenger reply sent", "recipient", payload.Recipient.ID)
	return nil
}
