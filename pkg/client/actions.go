// Package client is the Go SDK for the communityhub action API: a typed
// action surface plus the state-synchronization core sitting on top of it
// (query cache, optimistic mutations, debounced search, scroll accumulation,
// presence reconciliation). Every piece is dependency-injected so tests run
// against isolated stores and fake action backends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"grouple/communityhub/pkg/envelope"
)

// Result is a decoded action envelope. Transport failures are collapsed into
// a status 500 result, so callers branch on Status only and never see a
// transport error as a distinct channel.
type Result struct {
	Status  int
	Message string
	fields  map[string]json.RawMessage
}

// Field returns the raw domain field under name, or nil when absent.
func (r Result) Field(name string) json.RawMessage {
	return r.fields[name]
}

// DecodeField unmarshals the domain field under name into v.
func (r Result) DecodeField(name string, v any) error {
	raw, ok := r.fields[name]
	if !ok {
		return fmt.Errorf("envelope has no field %q", name)
	}
	return json.Unmarshal(raw, v)
}

// List returns the domain field under name as individual raw items. An
// absent field yields an empty list.
func (r Result) List(name string) ([]json.RawMessage, error) {
	raw, ok := r.fields[name]
	if !ok {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func transportFailure(err error) Result {
	return Result{Status: envelope.StatusInternal, Message: err.Error()}
}

func decodeResult(body []byte) Result {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return transportFailure(err)
	}
	res := Result{fields: fields}
	if raw, ok := fields["status"]; ok {
		if err := json.Unmarshal(raw, &res.Status); err != nil {
			return transportFailure(err)
		}
	}
	if raw, ok := fields["message"]; ok {
		_ = json.Unmarshal(raw, &res.Message)
	}
	delete(fields, "status")
	delete(fields, "message")
	return res
}

// Actions is the server-action surface the client core consumes. Methods
// never return an error: domain and transport failures alike arrive as the
// Result status.
type Actions interface {
	SearchGroups(ctx context.Context, query string, offset int) Result
	ExploreGroups(ctx context.Context, category string, offset int) Result
	ChannelPosts(ctx context.Context, channelID string, offset int) Result
	UpdateChannel(ctx context.Context, channelID string, name, icon *string) Result
	DeleteChannel(ctx context.Context, channelID string) Result
}

// HTTPActions talks to a communityhub server over its HTTP API.
type HTTPActions struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPActions(baseURL, token string, httpClient *http.Client) *HTTPActions {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPActions{baseURL: baseURL, token: token, httpClient: httpClient}
}

func (a *HTTPActions) do(ctx context.Context, method, path string, payload any) Result {
	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return transportFailure(err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return transportFailure(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return transportFailure(err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return transportFailure(err)
	}
	return decodeResult(buf.Bytes())
}

func (a *HTTPActions) SearchGroups(ctx context.Context, query string, offset int) Result {
	q := url.Values{"mode": {"GROUPS"}, "query": {query}, "paginate": {strconv.Itoa(offset)}}
	return a.do(ctx, http.MethodGet, "/api/v1/groups/search?"+q.Encode(), nil)
}

func (a *HTTPActions) ExploreGroups(ctx context.Context, category string, offset int) Result {
	q := url.Values{"category": {category}, "paginate": {strconv.Itoa(offset)}}
	return a.do(ctx, http.MethodGet, "/api/v1/groups/explore?"+q.Encode(), nil)
}

func (a *HTTPActions) ChannelPosts(ctx context.Context, channelID string, offset int) Result {
	path := fmt.Sprintf("/api/v1/channels/%s/posts?paginate=%d", channelID, offset)
	return a.do(ctx, http.MethodGet, path, nil)
}

type updateChannelRequest struct {
	Name *string `json:"name,omitempty"`
	Icon *string `json:"icon,omitempty"`
}

func (a *HTTPActions) UpdateChannel(ctx context.Context, channelID string, name, icon *string) Result {
	return a.do(ctx, http.MethodPatch, "/api/v1/channels/"+channelID, updateChannelRequest{Name: name, Icon: icon})
}

func (a *HTTPActions) DeleteChannel(ctx context.Context, channelID string) Result {
	return a.do(ctx, http.MethodDelete, "/api/v1/channels/"+channelID, nil)
}
