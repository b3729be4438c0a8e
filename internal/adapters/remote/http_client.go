// Package remote holds HTTP adapters for the remote session service and the
// equipment lookup collaborator.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gearscan/internal/domain"
	"gearscan/internal/logging"
	"gearscan/internal/ports"
)

// DefaultTimeout bounds a single remote call; a hung request becomes a
// retryable sync failure instead of blocking the engine.
const DefaultTimeout = 10 * time.Second

// Client talks to the remote session service over HTTP/JSON
type Client struct {
	baseURL string
	http    *http.Client
}

// Verify interface compliance at compile time
var _ ports.RemoteSessionService = (*Client)(nil)

// NewClient creates a Client for the given base URL. A zero timeout falls
// back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type itemPayload struct {
	Barcode      string `json:"barcode,omitempty"`
	CategoryID   *int64 `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	EquipmentID  int64  `json:"equipmentId"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	SerialNumber string `json:"serialNumber,omitempty"`
}

type sessionPayload struct {
	Items []itemPayload `json:"items"`
	Name  string        `json:"name"`
}

type sessionResponse struct {
	ExpiresAt time.Time     `json:"expiresAt"`
	ID        string        `json:"id"`
	Items     []itemPayload `json:"items"`
	Name      string        `json:"name"`
}

// Create implements RemoteSessionService.Create
func (c *Client) Create(ctx context.Context, payload ports.RemotePayload) (*ports.RemoteSession, error) {
	return c.do(ctx, http.MethodPost, "/sessions", &payload)
}

// Update implements RemoteSessionService.Update
func (c *Client) Update(ctx context.Context, id string, payload ports.RemotePayload) (*ports.RemoteSession, error) {
	return c.do(ctx, http.MethodPut, "/sessions/"+id, &payload)
}

// Get implements RemoteSessionService.Get
func (c *Client) Get(ctx context.Context, id string) (*ports.RemoteSession, error) {
	return c.do(ctx, http.MethodGet, "/sessions/"+id, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload *ports.RemotePayload) (*ports.RemoteSession, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payloadToWire(*payload))
		if err != nil {
			return nil, fmt.Errorf("failed to encode session payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSyncNetwork, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSyncNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrRemoteSessionNotFound)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s", domain.ErrSyncValidation, readErrorMessage(resp.Body))
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrSyncNetwork, resp.StatusCode)
	}

	var decoded sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: invalid response body: %v", domain.ErrSyncNetwork, err)
	}

	logging.Logger.Debug("remote session call completed",
		"method", method,
		"path", path,
		"remote_id", decoded.ID,
		"expires_at", decoded.ExpiresAt)

	return responseToRemote(decoded), nil
}

func payloadToWire(payload ports.RemotePayload) sessionPayload {
	wire := sessionPayload{
		Items: make([]itemPayload, len(payload.Items)),
		Name:  payload.Name,
	}
	for i, item := range payload.Items {
		wire.Items[i] = itemPayload{
			Barcode:      item.Barcode,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			EquipmentID:  item.EquipmentID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			SerialNumber: item.SerialNumber,
		}
	}
	return wire
}

func responseToRemote(decoded sessionResponse) *ports.RemoteSession {
	remote := &ports.RemoteSession{
		ExpiresAt: decoded.ExpiresAt,
		ID:        decoded.ID,
		Items:     make([]domain.SessionItem, len(decoded.Items)),
		Name:      decoded.Name,
	}
	for i, item := range decoded.Items {
		remote.Items[i] = domain.SessionItem{
			Barcode:      item.Barcode,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			EquipmentID:  item.EquipmentID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			SerialNumber: item.SerialNumber,
		}
	}
	return remote
}

// readErrorMessage extracts a server error message, tolerating non-JSON bodies
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return "no details provided"
	}

	var decoded struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &decoded); err == nil {
		if decoded.Error != "" {
			return decoded.Error
		}
		if decoded.Message != "" {
			return decoded.Message
		}
	}

	return strings.TrimSpace(string(data))
}
