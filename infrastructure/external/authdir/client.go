package authdir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/classconnect/backoffice/domain/apperror"
	"github.com/classconnect/backoffice/infrastructure/service/logger"
)

const serviceName = "authorization"

// Client talks to the external authorization service that owns user block
// and role state. Calls are single-attempt with a fixed timeout; any
// transport failure or unexpected status surfaces as unavailable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

type blockPayload struct {
	Block bool `json:"block"`
}

type rolePayload struct {
	Rol string `json:"rol"`
}

func (c *Client) BlockUser(ctx context.Context, userID string, block bool) error {
	url := fmt.Sprintf("%s/block/%s", c.baseURL, userID)
	return c.patch(ctx, userID, url, blockPayload{Block: block})
}

func (c *Client) ChangeRole(ctx context.Context, userID, role string) error {
	url := fmt.Sprintf("%s/rol/%s", c.baseURL, userID)
	return c.patch(ctx, userID, url, rolePayload{Rol: role})
}

func (c *Client) patch(ctx context.Context, userID, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperror.Internal("failed to encode authorization payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return apperror.Internal("failed to create authorization request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug(ctx, "Sending request to authorization service", map[string]interface{}{
		"url": url,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "Authorization service request failed", err, map[string]interface{}{
			"url": url,
		})
		return apperror.Unavailable(serviceName, err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return apperror.SubjectNotFound(userID)
	case http.StatusBadRequest:
		return apperror.BadRequest("Authorization service rejected the request.")
	default:
		c.logger.Error(ctx, "Authorization service returned unexpected status", nil, map[string]interface{}{
			"url":    url,
			"status": resp.StatusCode,
		})
		return apperror.Unavailable(serviceName, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}
