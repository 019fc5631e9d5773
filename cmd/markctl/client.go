package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mkoval/markd/internal/domain"
)

// apiClient is a thin wrapper over the daemon's HTTP API.
type apiClient struct {
	base string
	http *http.Client
}

func newClient(c *cli.Context) *apiClient {
	return &apiClient{
		base: strings.TrimRight(c.String("server"), "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *apiClient) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, a.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *apiClient) doRaw(method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, a.base+path, body)
	if err != nil {
		return nil, err
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, apiError(resp)
	}
	return resp, nil
}

func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("server: %s (%s)", body.Error, resp.Status)
	}
	return fmt.Errorf("server returned %s", resp.Status)
}

func idArg(c *cli.Context) (int64, error) {
	if c.NArg() < 1 {
		return 0, cli.Exit("missing bookmark id", 1)
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, cli.Exit("invalid bookmark id: "+c.Args().First(), 1)
	}
	return id, nil
}

func urlQueryEscape(s string) string {
	return url.QueryEscape(s)
}

func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}

func printBookmark(bm domain.Bookmark) {
	fmt.Printf("[%d] %s\n    %s\n", bm.ID, bm.Title, bm.URL)
	if bm.Category != "" {
		fmt.Printf("    category: %s\n", bm.Category)
	}
	if len(bm.Tags) > 0 {
		fmt.Printf("    tags: %s\n", strings.Join(bm.Tags, ", "))
	}
	if bm.Notes != "" {
		fmt.Printf("    notes: %s\n", bm.Notes)
	}
	if bm.VisitCount > 0 {
		fmt.Printf("    visits: %d\n", bm.VisitCount)
	}
	if r := bm.Reminder; r != nil {
		state := "off"
		if r.Enabled {
			state = "on"
		}
		fmt.Printf("    reminder: %s at %s (%s)\n", r.Frequency.Kind, r.Time, state)
		if r.LastReminded != nil {
			fmt.Printf("    last reminded: %s\n", r.LastReminded.Local().Format(time.RFC1123))
		}
	}
}
