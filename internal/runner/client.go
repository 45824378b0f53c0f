// Package runner calls the external code execution service. The service
// compiles and runs submitted code and returns captured output; nothing
// here sandboxes or interprets the code itself.
package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/config"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrExecutionFailed     = errors.New("execution service failed")
)

// languageSpec maps a client-facing language name onto the execution
// service's language/versionIndex pair.
type languageSpec struct {
	Name         string
	VersionIndex string
}

var languages = map[string]languageSpec{
	"javascript": {Name: "nodejs", VersionIndex: "4"},
	"python":     {Name: "python3", VersionIndex: "4"},
	"go":         {Name: "go", VersionIndex: "4"},
	"c":          {Name: "c", VersionIndex: "5"},
	"cpp":        {Name: "cpp17", VersionIndex: "1"},
	"java":       {Name: "java", VersionIndex: "4"},
}

type Client struct {
	cfg  config.RunnerConfig
	http *http.Client
}

func NewClient(cfg config.RunnerConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type executeRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	Script       string `json:"script"`
	Language     string `json:"language"`
	VersionIndex string `json:"versionIndex"`
}

type executeResponse struct {
	Output string `json:"output"`
	Error  string `json:"error"`
}

// Run submits code to the execution service and returns captured output.
// The call is bounded by the configured timeout; a failure or timeout is
// returned as an error wrapping ErrExecutionFailed, never left pending.
func (c *Client) Run(ctx context.Context, language, code string) (string, error) {
	spec, ok := languages[language]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(executeRequest{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		Script:       code,
		Language:     spec.Name,
		VersionIndex: spec.VersionIndex,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("module", "runner").Str("language", language).Msg("execution request failed")
		return "", fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Error().Str("module", "runner").Int("status", resp.StatusCode).Msg("execution service error")
		return "", fmt.Errorf("%w: status %d", ErrExecutionFailed, resp.StatusCode)
	}

	var out executeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrExecutionFailed, out.Error)
	}
	return out.Output, nil
}
