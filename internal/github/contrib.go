package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"

	"github.com/gitstat-cli/gitstat/internal/calendar"
)

const graphqlEndpoint = "https://api.github.com/graphql"

// Day is a single day entry from GitHub's Contribution Calendar.
// Date is returned as "YYYY-MM-DD" (GitHub GraphQL).
type Day struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
}

type Week struct {
	ContributionDays []Day `json:"contributionDays"`
}

type Calendar struct {
	TotalContributions int    `json:"totalContributions"`
	Weeks              []Week `json:"weeks"`
}

const dateLayout = "2006-01-02"

// Records flattens the week-major calendar into (date, count) pairs, the
// contract the layout engine consumes. Dates are midnight UTC.
func (c Calendar) Records() ([]calendar.Record, error) {
	var recs []calendar.Record
	for _, w := range c.Weeks {
		for _, d := range w.ContributionDays {
			t, err := time.Parse(dateLayout, d.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid date %q in contribution calendar: %w", d.Date, err)
			}
			recs = append(recs, calendar.Record{Date: t, Count: d.ContributionCount})
		}
	}
	return recs, nil
}

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("from/to must be set")
	}
	if from.After(to) {
		return fmt.Errorf("from must be <= to")
	}
	// GitHub launched in 2008-04-10; earlier dates are not meaningful for contributions.
	// Ref: https://github.blog/news-insights/we-launched/
	launch := time.Date(2008, 4, 10, 0, 0, 0, 0, time.UTC)
	if from.Before(launch) || to.Before(launch) {
		return fmt.Errorf("date range must be on/after 2008-04-10 (GitHub launch)")
	}
	// GitHub GraphQL limit: span must not exceed 1 year.
	// Allow up to 366 days to accommodate leap years.
	if to.Sub(from) > 366*24*time.Hour {
		return fmt.Errorf("date range must not exceed 1 year (GitHub API limit)")
	}
	return nil
}

const contributionQuery = `
query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    login
    contributionsCollection(from: $from, to: $to) {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

type contributionResponse struct {
	User *struct {
		Login                   string `json:"login"`
		ContributionsCollection struct {
			ContributionCalendar Calendar `json:"contributionCalendar"`
		} `json:"contributionsCollection"`
	} `json:"user"`
}

// FetchUserContributionCalendar returns the given user's contribution calendar
// covering [from,to] (must not exceed 1 year). An explicit token drives a
// direct GraphQL request; without one, go-gh's default client is used so gh
// CLI credentials keep working.
func FetchUserContributionCalendar(ctx context.Context, login, token string, from, to time.Time) (Calendar, error) {
	if login == "" {
		return Calendar{}, fmt.Errorf("user login must not be empty")
	}
	if err := validateRange(from, to); err != nil {
		return Calendar{}, err
	}
	if token != "" {
		return fetchCalendarWithToken(ctx, login, token, from, to)
	}
	return fetchCalendarWithGh(ctx, login, from, to)
}

func fetchCalendarWithGh(ctx context.Context, login string, from, to time.Time) (Calendar, error) {
	client, err := api.DefaultGraphQLClient()
	if err != nil {
		// go-gh fails here when no credential source resolves at all.
		return Calendar{}, &AuthError{Message: err.Error()}
	}

	vars := map[string]any{
		"login": login,
		"from":  from.UTC(),
		"to":    to.UTC(),
	}

	var resp contributionResponse
	if err := client.DoWithContext(ctx, contributionQuery, vars, &resp); err != nil {
		if isGraphQLUserNotFound(err) {
			return Calendar{}, &UserNotFoundError{Login: login, cause: err}
		}
		return Calendar{}, err
	}
	if resp.User == nil || resp.User.Login == "" {
		return Calendar{}, &UserNotFoundError{Login: login}
	}
	return resp.User.ContributionsCollection.ContributionCalendar, nil
}

func fetchCalendarWithToken(ctx context.Context, login, token string, from, to time.Time) (Calendar, error) {
	vars := map[string]any{
		"login": login,
		"from":  from.UTC().Format(time.RFC3339),
		"to":    to.UTC().Format(time.RFC3339),
	}

	var resp contributionResponse
	if err := graphqlRequest(ctx, token, contributionQuery, vars, &resp); err != nil {
		if isGraphQLUserNotFound(err) {
			return Calendar{}, &UserNotFoundError{Login: login, cause: err}
		}
		return Calendar{}, err
	}
	if resp.User == nil || resp.User.Login == "" {
		return Calendar{}, &UserNotFoundError{Login: login}
	}
	return resp.User.ContributionsCollection.ContributionCalendar, nil
}

// graphqlRequest sends a GraphQL request to GitHub's API with the given token.
func graphqlRequest(ctx context.Context, token, query string, variables map[string]any, result any) error {
	if token == "" {
		return &AuthError{Message: "a GitHub token is required"}
	}

	payload := map[string]any{
		"query":     query,
		"variables": variables,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, graphqlEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "gitstat-cli")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AuthError{Message: fmt.Sprintf("GitHub rejected the token (status %d)", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var gqlResp struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return fmt.Errorf("GraphQL error: %s", gqlResp.Errors[0].Message)
	}

	if err := json.Unmarshal(gqlResp.Data, result); err != nil {
		return fmt.Errorf("failed to parse data: %w", err)
	}

	return nil
}
