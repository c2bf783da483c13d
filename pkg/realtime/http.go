package realtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

const maxResponseBytes int64 = 4 * 1024 * 1024

var (
	// ErrUnexpectedStatus is wrapped when an upstream API answers with a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrMalformedResponse is wrapped when a 200 body lacks the expected fields.
	ErrMalformedResponse = errors.New("malformed response")
)

// secretParams are redacted from URLs that end up in errors and logs.
var secretParams = []string{"appid", "apiKey"}

// getJSON issues a GET to base+path with query and returns the parsed body.
// Any status other than 200 yields an error wrapping ErrUnexpectedStatus.
func getJSON(ctx context.Context, client *http.Client, base, path string, query url.Values, header http.Header) (gjson.Result, error) {
	if client == nil {
		client = http.DefaultClient
	}
	target := base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("build request %s: %w", redact(base+path, query), err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return gjson.Result{}, fmt.Errorf("GET %s: %w", redact(base+path, query), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return gjson.Result{}, fmt.Errorf("GET %s: %w: %d", redact(base+path, query), ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}
	return gjson.ParseBytes(body), nil
}

func redact(target string, query url.Values) string {
	if len(query) == 0 {
		return target
	}
	clean := url.Values{}
	for key, values := range query {
		clean[key] = values
	}
	for _, key := range secretParams {
		if clean.Has(key) {
			clean.Set(key, "REDACTED")
		}
	}
	return target + "?" + clean.Encode()
}
