// Package dns is a typed wrapper around a PowerDNS-style authoritative DNS
// HTTP API: upsert/delete A-records and list an rrset (§4.1.2). It owns
// this backend's retry/timeout/error-classification policy.
package dns

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/deployhub/orchestrator/internal/adapters/httpclient"
	apperrors "github.com/deployhub/orchestrator/internal/errors"
)

// RRSetRecord is one content value of an rrset.
type RRSetRecord struct {
	Content  string `json:"content"`
	Disabled bool   `json:"disabled"`
}

// RRSet is one DNS resource record set, as returned by listRecords.
type RRSet struct {
	Name    string        `json:"name"`
	Type    string        `json:"type"`
	TTL     int           `json:"ttl"`
	Records []RRSetRecord `json:"records"`
}

// Client is the DNS adapter.
type Client struct {
	baseURL string
	apiKey  string

	client *retryablehttp.Client
}

// New builds a DNS adapter client targeting baseURL, authenticating with
// the X-API-Key header.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  httpclient.New(httpclient.DefaultOptions(30 * time.Second)),
	}
}

func withTrailingDot(s string) string {
	if strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}

// UpsertARecord replaces the A-record rrset for name within zone, pointing
// at ipv4. Zone and record names are sent with a trailing dot; ttl defaults
// to 300s when zero.
func (c *Client) UpsertARecord(ctx context.Context, zone, name, ipv4 string, ttl int) error {
	if ttl <= 0 {
		ttl = 300
	}

	zone = withTrailingDot(zone)
	fqdn := withTrailingDot(name)

	payload := map[string]interface{}{
		"rrsets": []map[string]interface{}{
			{
				"name":       fqdn,
				"type":       "A",
				"ttl":        ttl,
				"changetype": "REPLACE",
				"records": []map[string]interface{}{
					{"content": ipv4, "disabled": false},
				},
			},
		},
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode rrset payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/api/v1/servers/localhost/zones/"+zone, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "upsertARecord: backend unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.Newf(apperrors.CodeNotFound, apperrors.KindNotFound, "zone %s not found", zone)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.Newf(apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "upsertARecord: backend rejected rrset (%d)", resp.StatusCode)
	}
	return nil
}

// DeleteRecord removes the rrset of recordType for name within zone. A 404
// is treated as success.
func (c *Client) DeleteRecord(ctx context.Context, zone, name, recordType string) error {
	zone = withTrailingDot(zone)
	fqdn := withTrailingDot(name)

	payload := map[string]interface{}{
		"rrsets": []map[string]interface{}{
			{
				"name":       fqdn,
				"type":       recordType,
				"changetype": "DELETE",
			},
		},
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode rrset payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/api/v1/servers/localhost/zones/"+zone, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "deleteRecord: backend unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || (resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return nil
	}
	return apperrors.Newf(apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "deleteRecord: backend rejected delete (%d)", resp.StatusCode)
}

// ListRecords returns every rrset in zone.
func (c *Client) ListRecords(ctx context.Context, zone string) ([]RRSet, error) {
	zone = withTrailingDot(zone)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/servers/localhost/zones/"+zone, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "listRecords: backend unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "listRecords: failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.Newf(apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "listRecords: backend error (%d)", resp.StatusCode)
	}

	var out struct {
		RRSets []RRSet `json:"rrsets"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeBackendUnavailable, apperrors.KindUnavailable, "listRecords: malformed response")
	}
	return out.RRSets, nil
}
