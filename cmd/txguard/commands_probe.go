package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/suryansh-23/txguard/internal/cache"
	"github.com/suryansh-23/txguard/internal/guard"
)

const probeSnippetBytes = 512

type probeResult struct {
	Status  int
	Snippet string
}

func newProbeCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <url>",
		Short: "GET a URL with timeout, retry and redacted errors",
		Long: "Fetches the URL through the configured remote policy. HTTP 429 and 5xx responses are retried; " +
			"other 4xx responses fail immediately. The body snippet is printed with secrets redacted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			res, err := guard.Call(cmd.Context(), state.guard, "probe", cache.Key("probe", url), func(ctx context.Context) (probeResult, error) {
				return fetch(ctx, http.DefaultClient, url)
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status %d\n", res.Status)
			if res.Snippet != "" {
				fmt.Fprintln(out, state.redactor.Text(res.Snippet))
			}
			return nil
		},
	}
}

// fetch performs one GET. Its errors carry the wording the retry
// classifier looks for: throttling reads as a rate limit and server
// failures as network errors.
func fetch(ctx context.Context, client *http.Client, url string) (probeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return probeResult{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return probeResult{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, probeSnippetBytes))
	if err != nil {
		return probeResult{}, fmt.Errorf("read body: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return probeResult{}, fmt.Errorf("http %d: rate limit exceeded", resp.StatusCode)
	case resp.StatusCode >= 500:
		return probeResult{}, fmt.Errorf("http %d: network error from server", resp.StatusCode)
	case resp.StatusCode >= 400:
		return probeResult{}, fmt.Errorf("http %d: %s", resp.StatusCode, snippet(body))
	}
	return probeResult{Status: resp.StatusCode, Snippet: snippet(body)}, nil
}

func snippet(body []byte) string {
	for len(body) > 0 && !utf8.Valid(body) {
		body = body[:len(body)-1]
	}
	return strings.TrimSpace(string(body))
}
