// Package github fetches public repository listings from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/middleware"
	"devconnect/internal/models"
)

// Repo is the subset of the GitHub repository payload exposed to clients.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// Client calls the GitHub API. BaseURL is overridable so tests can point
// it at a local server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ListRepos returns the user's five oldest public repos, cached for a short
// period. Any non-2xx GitHub response surfaces as an upstream error, 404
// included, so an unknown username reads as GitHub failing the lookup.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	var repos []Repo
	err := cache.Aside(ctx, cache.GithubReposKey(username), &repos, cache.GithubReposTTL, func() error {
		fetched, err := c.fetchRepos(ctx, username)
		if err != nil {
			return err
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) fetchRepos(ctx context.Context, username string) ([]Repo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.UpstreamRequests.WithLabelValues("github", "error").Inc()
		return nil, models.NewUpstreamError("github", 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		middleware.UpstreamRequests.WithLabelValues("github", "error").Inc()
		return nil, models.NewUpstreamError("github", resp.StatusCode)
	}
	middleware.UpstreamRequests.WithLabelValues("github", "success").Inc()

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, models.NewUpstreamError("github", resp.StatusCode)
	}
	return repos, nil
}
