// Package health checks that the companion server is up.
package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultWant is the body a healthy server answers with.
const DefaultWant = "Hello, World!"

// maxBody bounds how much of the answer is read.
const maxBody = 4096

// Checker fetches URL and compares the body with Want.
type Checker struct {
	Client *http.Client // nil means http.DefaultClient
	URL    string
	Want   string // empty means DefaultWant
}

// Check returns nil if the server answered 200 with the expected body.
func (c *Checker) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health: %s answered %s", c.URL, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("health: read body: %w", err)
	}
	want := c.Want
	if want == "" {
		want = DefaultWant
	}
	if string(body) != want {
		return fmt.Errorf("health: unexpected answer %q", body)
	}
	return nil
}
