// Package leetcode talks to the public LeetCode statistics mirrors, merges
// their answers into one profile view and reconciles submission history
// into the user's tracked coding problems.
package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"devtracker/backend/config"
	"devtracker/backend/models"
)

// ProviderError is returned for non-2xx answers.
type ProviderError struct {
	URL    string
	Status int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Status)
}

// maxBody bounds how much of a provider response is read.
const maxBody = 4 << 20

type Client struct {
	http         *http.Client
	primaryURL   string
	secondaryURL string
	fallbackURL  string
	timeout      time.Duration
}

func NewClient(cfg config.LeetCodeConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:         httpClient,
		primaryURL:   strings.TrimRight(cfg.PrimaryURL, "/"),
		secondaryURL: strings.TrimRight(cfg.SecondaryURL, "/"),
		fallbackURL:  strings.TrimRight(cfg.FallbackURL, "/"),
		timeout:      timeout,
	}
}

// getJSON performs one bounded GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return &ProviderError{URL: rawURL, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

func join(base string, parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return base + "/" + strings.Join(escaped, "/")
}

// totals is the per-tier solved/total block every provider shares.
type totals struct {
	TotalSolved    int `json:"totalSolved"`
	TotalQuestions int `json:"totalQuestions"`
	EasySolved     int `json:"easySolved"`
	TotalEasy      int `json:"totalEasy"`
	MediumSolved   int `json:"mediumSolved"`
	TotalMedium    int `json:"totalMedium"`
	HardSolved     int `json:"hardSolved"`
	TotalHard      int `json:"totalHard"`
}

func (t totals) applyTo(s *models.ExternalProfileStats) {
	s.TotalSolved = t.TotalSolved
	s.TotalQuestions = t.TotalQuestions
	s.EasySolved = t.EasySolved
	s.TotalEasy = t.TotalEasy
	s.MediumSolved = t.MediumSolved
	s.TotalMedium = t.TotalMedium
	s.HardSolved = t.HardSolved
	s.TotalHard = t.TotalHard
}

type primaryStats struct {
	totals
	Errors         json.RawMessage `json:"errors"`
	AcceptanceRate float64         `json:"acceptanceRate"`
	Ranking        int             `json:"ranking"`
	Avatar         string          `json:"avatar"`
}

func (p *primaryStats) usable() bool {
	raw := strings.TrimSpace(string(p.Errors))
	return raw == "" || raw == "null"
}

// fetchPrimary queries the primary aggregate endpoint.
func (c *Client) fetchPrimary(ctx context.Context, username string) (*primaryStats, error) {
	var out primaryStats
	if err := c.getJSON(ctx, join(c.primaryURL, username), &out); err != nil {
		return nil, err
	}
	if !out.usable() {
		return nil, fmt.Errorf("primary stats for %q: provider reported errors: %s", username, out.Errors)
	}
	return &out, nil
}

type difficultyCount struct {
	Difficulty  string `json:"difficulty"`
	Count       int    `json:"count"`
	Submissions int    `json:"submissions"`
}

func submissionsFor(counts []difficultyCount, difficulty string) int {
	for _, c := range counts {
		if c.Difficulty == difficulty {
			return c.Submissions
		}
	}
	return 0
}

type secondaryStats struct {
	totals
	// Shadows totals.TotalSolved so a missing field can be told apart from 0.
	TotalSolved      *int              `json:"totalSolved"`
	Ranking          int               `json:"ranking"`
	AcceptanceRate   float64           `json:"acceptanceRate"`
	TotalSubmissions []difficultyCount `json:"totalSubmissions"`
	MatchedUserStats struct {
		AcSubmissionNum []difficultyCount `json:"acSubmissionNum"`
	} `json:"matchedUserStats"`
}

func (s *secondaryStats) applyTo(out *models.ExternalProfileStats) {
	s.totals.applyTo(out)
	out.TotalSolved = *s.TotalSolved
	out.Ranking = s.Ranking
}

// acceptance prefers the submission breakdown over the explicit field when the
// breakdown has any submissions.
func (s *secondaryStats) acceptance() float64 {
	if all := submissionsFor(s.TotalSubmissions, "All"); all > 0 {
		ac := submissionsFor(s.MatchedUserStats.AcSubmissionNum, "All")
		return math.Round(float64(ac) / float64(all) * 100)
	}
	return s.AcceptanceRate
}

// fetchSecondary queries the secondary aggregate endpoint. A payload without
// totalSolved is treated as unusable.
func (c *Client) fetchSecondary(ctx context.Context, username string) (*secondaryStats, error) {
	var out secondaryStats
	if err := c.getJSON(ctx, join(c.secondaryURL, username), &out); err != nil {
		return nil, err
	}
	if out.TotalSolved == nil {
		return nil, fmt.Errorf("secondary stats for %q: no totalSolved in response", username)
	}
	return &out, nil
}

type profile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Ranking  int    `json:"ranking"`
}

func (c *Client) fetchProfile(ctx context.Context, username string) (*profile, error) {
	var out profile
	if err := c.getJSON(ctx, join(c.secondaryURL, "userProfile", username), &out); err != nil {
		return nil, err
	}
	if out.Username == "" {
		return nil, fmt.Errorf("profile for %q: no username in response", username)
	}
	return &out, nil
}

// fetchCalendar returns the submission calendar: UTC day start (epoch seconds)
// to number of submissions. The provider embeds it as a JSON string.
func (c *Client) fetchCalendar(ctx context.Context, username string) (map[int64]int, error) {
	var out struct {
		SubmissionCalendar string `json:"submissionCalendar"`
	}
	if err := c.getJSON(ctx, join(c.secondaryURL, "submissionCalendar", username), &out); err != nil {
		return nil, err
	}
	if out.SubmissionCalendar == "" {
		return nil, fmt.Errorf("calendar for %q: empty submissionCalendar", username)
	}

	var byKey map[string]int
	if err := json.Unmarshal([]byte(out.SubmissionCalendar), &byKey); err != nil {
		return nil, fmt.Errorf("calendar for %q: %w", username, err)
	}
	calendar := make(map[int64]int, len(byKey))
	for k, v := range byKey {
		ts, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		calendar[ts] = v
	}
	return calendar, nil
}

type fallbackStats struct {
	totals
	Status         string  `json:"status"`
	AcceptanceRate float64 `json:"acceptanceRate"`
	Ranking        int     `json:"ranking"`
}

func (c *Client) fetchFallback(ctx context.Context, username string) (*fallbackStats, error) {
	var out fallbackStats
	if err := c.getJSON(ctx, join(c.fallbackURL, username), &out); err != nil {
		return nil, err
	}
	if out.Status != "success" {
		return nil, fmt.Errorf("fallback stats for %q: status %q", username, out.Status)
	}
	return &out, nil
}

// RecentSubmissions returns up to limit submissions, newest first, of every
// verdict.
func (c *Client) RecentSubmissions(ctx context.Context, username string, limit int) ([]models.Submission, error) {
	var out struct {
		Submission []models.Submission `json:"submission"`
	}
	rawURL := join(c.secondaryURL, username, "submission") + "?limit=" + strconv.Itoa(limit)
	if err := c.getJSON(ctx, rawURL, &out); err != nil {
		return nil, err
	}
	return out.Submission, nil
}
