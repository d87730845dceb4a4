package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// RequestOptions carries the optional parts of a request.
type RequestOptions struct {
	// Body is marshaled to JSON unless it is a []byte, which is sent raw.
	Body any
	// Params is appended to the URL as an encoded query string.
	Params url.Values
	// Header entries are merged over the default headers.
	Header http.Header
	// Out, if non-nil, receives the decoded JSON response body.
	Out any
}

// Response is the normalized successful outcome of a request.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// requestSpec is an immutable description of one HTTP call. Retries after a
// refresh re-execute the same descriptor with a different bearer token; the
// descriptor itself is never mutated.
type requestSpec struct {
	method      string
	path        string
	params      url.Values
	header      http.Header
	body        []byte
	contentType string
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, opts)
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, opts)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, opts)
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, opts)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, opts)
}

// Do issues one HTTP call with bearer-token attachment and, for protected
// paths, the 401-triggered refresh-and-retry protocol. Callers see either a
// normalized *Response or a normalized error; a session expiry recovered by
// a successful refresh is never surfaced.
func (c *Client) Do(ctx context.Context, method, path string, opts *RequestOptions) (*Response, error) {
	spec, err := c.newRequestSpec(method, path, opts)
	if err != nil {
		return nil, err
	}
	return c.roundTrip(ctx, spec, opts)
}

func (c *Client) roundTrip(ctx context.Context, spec *requestSpec, opts *RequestOptions) (*Response, error) {
	protected := !isPublicPath(spec.path)

	if protected && c.refreshBuffer > 0 && c.tokenExpiring(c.store.AccessToken()) {
		if _, err := c.refreshTokens(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.execute(ctx, spec, c.store.AccessToken())
	if err != nil {
		return nil, err
	}

	if resp.Status == http.StatusUnauthorized && protected {
		pair, err := c.refreshTokens(ctx)
		if err != nil {
			return nil, err
		}
		resp, err = c.execute(ctx, spec, pair.AccessToken)
		if err != nil {
			return nil, err
		}
	}

	return normalize(resp, opts)
}

func (c *Client) newRequestSpec(method, path string, opts *RequestOptions) (*requestSpec, error) {
	spec := &requestSpec{
		method: method,
		path:   path,
	}
	if opts != nil {
		spec.params = opts.Params
		spec.header = opts.Header
		if opts.Body != nil {
			if raw, ok := opts.Body.([]byte); ok {
				spec.body = raw
			} else {
				data, err := json.Marshal(opts.Body)
				if err != nil {
					return nil, errors.Wrap(err, "[Client.Do] marshal request body")
				}
				spec.body = data
				spec.contentType = "application/json"
			}
		}
	}
	return spec, nil
}

// execute performs the network call for a spec with the given bearer token
// and returns the raw response. Transport failures come back as normalized
// network errors; any received response, whatever its status, is returned.
func (c *Client) execute(ctx context.Context, spec *requestSpec, accessToken string) (*Response, error) {
	fullURL := c.baseURL + spec.path
	if len(spec.params) > 0 {
		fullURL += "?" + spec.params.Encode()
	}

	var body io.Reader
	if spec.body != nil {
		body = bytes.NewReader(spec.body)
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, fullURL, body)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.execute] http.NewRequestWithContext")
	}

	req.Header.Set("Accept", "application/json")
	if spec.contentType != "" {
		req.Header.Set("Content-Type", spec.contentType)
	}
	for key, values := range spec.header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	started := c.nowTime()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", spec.method).Str("path", spec.path).
			Str("request_id", requestID).Msg("request transport failure")
		return nil, newNetworkError(err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	c.logger.Debug().Str("method", spec.method).Str("path", spec.path).
		Int("status", httpResp.StatusCode).
		Dur("duration", c.nowTime().Sub(started)).
		Str("request_id", requestID).Msg("request completed")

	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   data,
	}, nil
}

// normalize turns a raw response into the caller-facing outcome: non-2xx
// statuses become *HTTPError, JSON bodies are decoded into opts.Out.
func normalize(resp *Response, opts *RequestOptions) (*Response, error) {
	if resp.Status < http.StatusOK || resp.Status >= http.StatusMultipleChoices {
		return nil, newHTTPError(resp.Status, http.StatusText(resp.Status), resp.Body)
	}
	if opts != nil && opts.Out != nil && len(resp.Body) > 0 && isJSON(resp.Header) {
		if err := json.Unmarshal(resp.Body, opts.Out); err != nil {
			return nil, errors.Wrap(err, "[Client.Do] decode response body")
		}
	}
	return resp, nil
}

func isJSON(header http.Header) bool {
	return strings.Contains(header.Get("Content-Type"), "application/json")
}
