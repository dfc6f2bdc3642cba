// Package testutil provides a small JSON API client and response assertions
// for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Client exercises an API served by an httptest server. All request bodies
// are JSON; failures to build or send a request abort the test.
type Client struct {
	t    *testing.T
	base string
	http *http.Client
}

// NewClient wraps a running test server.
func NewClient(t *testing.T, srv *httptest.Server) *Client {
	return &Client{t: t, base: srv.URL, http: srv.Client()}
}

// Get performs a GET request.
func (c *Client) Get(path string) *Response {
	c.t.Helper()
	return c.request(http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(path string, body any) *Response {
	c.t.Helper()
	return c.request(http.MethodPost, path, body)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(path string, body any) *Response {
	c.t.Helper()
	return c.request(http.MethodPatch, path, body)
}

func (c *Client) request(method, path string, body any) *Response {
	c.t.Helper()

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal %s %s body: %v", method, path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, payload)
	if err != nil {
		c.t.Fatalf("build %s %s: %v", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read %s %s response: %v", method, path, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       raw,
		t:          c.t,
	}
}

// Response is a fully read HTTP response with assertion helpers. Assertions
// return the response so checks chain.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	t          *testing.T
}

// JSON decodes the body into v, failing the test on malformed output.
func (r *Response) JSON(v any) {
	r.t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		r.t.Fatalf("decode response: %v\nbody: %s", err, r.Body)
	}
}

// JSONMap decodes the body as an object.
func (r *Response) JSONMap() map[string]any {
	r.t.Helper()
	m := map[string]any{}
	r.JSON(&m)
	return m
}

// JSONList decodes the body as an array.
func (r *Response) JSONList() []any {
	r.t.Helper()
	var l []any
	r.JSON(&l)
	return l
}

// AssertStatus checks the response status code.
func (r *Response) AssertStatus(want int) *Response {
	r.t.Helper()
	if r.StatusCode != want {
		r.t.Errorf("status = %d, want %d\nbody: %s", r.StatusCode, want, r.Body)
	}
	return r
}

// AssertBodyContains checks that the raw body contains substr.
func (r *Response) AssertBodyContains(substr string) *Response {
	r.t.Helper()
	if !strings.Contains(string(r.Body), substr) {
		r.t.Errorf("body does not contain %q: %s", substr, r.Body)
	}
	return r
}
