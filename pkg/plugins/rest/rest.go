// Package rest calls HTTP endpoints and exposes the decoded response to
// save and validate directives.
package rest

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/systemstart/testflow/pkg/plugin"
	"github.com/systemstart/testflow/pkg/vars"
	"resty.dev/v3"
)

// TypeID is the step type this plugin registers under.
const TypeID = "REST"

// Response body decodings.
const (
	responseJSON = "JSON"
	responseText = "TEXT"
	responseXML  = "XML"
)

type call struct {
	URL          string            `yaml:"url"`
	BaseURL      string            `yaml:"base_url"`
	Path         string            `yaml:"path"`
	Method       string            `yaml:"method"`
	Timeout      int               `yaml:"timeout"`
	Headers      map[string]string `yaml:"headers"`
	Payload      any               `yaml:"payload"`
	Verify       bool              `yaml:"verify"`
	ResponseType string            `yaml:"response_type"`
	StatusCodes  []int             `yaml:"status_codes"`
}

// Plugin issues one HTTP request per step. The expected status codes are
// part of the call, so an unexpected status fails the step rather than the
// validate phase.
type Plugin struct{}

// New creates the plugin.
func New() *Plugin { return &Plugin{} }

// Defaults returns the default call tree.
func (p *Plugin) Defaults() map[string]any {
	return map[string]any{
		"base_url":      "${REST_BASE_URL}",
		"path":          "${REST_PATH}",
		"method":        "GET",
		"timeout":       0,
		"headers":       map[string]any{},
		"verify":        false,
		"response_type": responseJSON,
		"status_codes":  []any{200},
	}
}

// Augment derives the request url from base_url and path when no explicit
// url is set, and normalizes the method.
func (p *Plugin) Augment(callTree map[string]any, _ *vars.Context, _ string) error {
	url, _ := callTree["url"].(string)
	if url == "" {
		base, _ := callTree["base_url"].(string)
		path, _ := callTree["path"].(string)
		callTree["url"] = strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
	}

	method, _ := callTree["method"].(string)
	method = strings.ToUpper(method)
	switch method {
	case "GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS":
		callTree["method"] = method
	default:
		return fmt.Errorf("unsupported method %q", method)
	}
	return nil
}

// Execute sends the request and returns
// {status_code: n, body: decoded, headers: map}.
func (p *Plugin) Execute(ctx context.Context, callTree map[string]any) (any, error) {
	var c call
	if err := plugin.DecodeCall(callTree, &c); err != nil {
		return nil, err
	}
	if c.URL == "" {
		return nil, fmt.Errorf("url is required")
	}

	client := resty.New()
	defer client.Close()

	if c.Timeout > 0 {
		client.SetTimeout(time.Duration(c.Timeout) * time.Second)
	}
	if !c.Verify {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	req := client.R().SetContext(ctx).SetHeaders(c.Headers)
	if c.Payload != nil {
		req.SetBody(c.Payload)
	}

	slog.Debug("sending request", "method", c.Method, "url", c.URL)

	res, err := req.Execute(c.Method, c.URL)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if len(c.StatusCodes) > 0 && !slices.Contains(c.StatusCodes, res.StatusCode()) {
		return nil, fmt.Errorf("unexpected status %d, want one of %v: %s",
			res.StatusCode(), c.StatusCodes, strings.TrimSpace(res.String()))
	}

	body, err := decodeBody(c.ResponseType, res.Bytes())
	if err != nil {
		return nil, err
	}

	headers := make(map[string]any, len(res.Header()))
	for name := range res.Header() {
		headers[name] = res.Header().Get(name)
	}

	return map[string]any{
		"status_code": res.StatusCode(),
		"body":        body,
		"headers":     headers,
	}, nil
}

func decodeBody(responseType string, raw []byte) (any, error) {
	switch strings.ToUpper(responseType) {
	case responseJSON, "":
		if len(raw) == 0 {
			return nil, nil
		}
		var body any
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("decoding json body: %w", err)
		}
		return body, nil
	case responseText, responseXML:
		return string(raw), nil
	}
	return nil, fmt.Errorf("unsupported response_type %q", responseType)
}
