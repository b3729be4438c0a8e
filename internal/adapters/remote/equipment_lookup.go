package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gearscan/internal/domain"
	"gearscan/internal/ports"
)

// LookupClient resolves barcodes against the equipment catalog service
type LookupClient struct {
	baseURL string
	http    *http.Client
}

// Verify interface compliance at compile time
var _ ports.EquipmentLookup = (*LookupClient)(nil)

// NewLookupClient creates a LookupClient for the given base URL
func NewLookupClient(baseURL string, timeout time.Duration) *LookupClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LookupClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type equipmentResponse struct {
	Barcode      string `json:"barcode"`
	CategoryID   *int64 `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	EquipmentID  int64  `json:"equipmentId"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber,omitempty"`
}

// LookupBarcode implements EquipmentLookup.LookupBarcode
func (c *LookupClient) LookupBarcode(ctx context.Context, barcode string) (*domain.EquipmentRecord, error) {
	path := "/equipment/" + url.PathEscape(barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("equipment lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("barcode %s: %w", barcode, domain.ErrEquipmentNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("equipment lookup failed: unexpected status %d", resp.StatusCode)
	}

	var decoded equipmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("invalid equipment response: %w", err)
	}

	return &domain.EquipmentRecord{
		Barcode:      decoded.Barcode,
		CategoryID:   decoded.CategoryID,
		CategoryName: decoded.CategoryName,
		EquipmentID:  decoded.EquipmentID,
		Name:         decoded.Name,
		SerialNumber: decoded.SerialNumber,
	}, nil
}
