package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// WorkoutDay is a single recorded workout date as reported by the server.
type WorkoutDay struct {
	ID   string
	Date time.Time
}

// WeeklySummary is the aggregate for the current Monday-start week.
type WeeklySummary struct {
	WeekStart     time.Time
	DaysWorkedOut int
}

// MonthStats mirrors the server's month aggregate.
type MonthStats struct {
	TotalDaysInMonth  int
	CompletedWorkouts int
	CompletionRate    float64
	CurrentStreak     int
}

// Client is the gateway to the tracker API: it exchanges credentials for a
// session grant and performs ledger operations with it. Any 401 response,
// from any call, clears the session store and invokes the unauthorized hook
// before the error is returned.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          *Store
	onUnauthorized func()
}

// NewClient constructs a Client for the API rooted at baseURL (including the
// /api prefix). The timeout bounds every request; a timeout surfaces as
// ErrNetwork.
func NewClient(baseURL string, store *Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
	}
}

// Store exposes the session store backing this client.
func (c *Client) Store() *Store {
	return c.store
}

// OnUnauthorized registers a hook invoked after the session store has been
// cleared in response to a 401. The navigation layer uses it to force a
// redirect to the auth screen.
func (c *Client) OnUnauthorized(hook func()) {
	c.onUnauthorized = hook
}

type authPayload struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// Register creates an account. Field presence and the password confirmation
// are validated locally before any network call; validation failures never
// reach the server. On success the session store is populated before the
// method returns.
func (c *Client) Register(ctx context.Context, username, password, confirm string) (Identity, error) {
	vErr := &ValidationError{}
	if strings.TrimSpace(username) == "" {
		vErr.add("username", "please fill in all fields")
	}
	if password == "" {
		vErr.add("password", "please fill in all fields")
	}
	if password != confirm {
		vErr.add("confirmPassword", "passwords do not match")
	}
	if vErr.hasErrors() {
		return Identity{}, vErr
	}

	return c.authenticate(ctx, "/auth/register", username, password)
}

// Login exchanges credentials for a session grant, populating the session
// store before returning.
func (c *Client) Login(ctx context.Context, username, password string) (Identity, error) {
	vErr := &ValidationError{}
	if strings.TrimSpace(username) == "" || password == "" {
		vErr.add("credentials", "please fill in all fields")
	}
	if vErr.hasErrors() {
		return Identity{}, vErr
	}

	return c.authenticate(ctx, "/auth/login", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (Identity, error) {
	body, err := json.Marshal(map[string]string{
		"username": strings.TrimSpace(username),
		"password": password,
	})
	if err != nil {
		return Identity{}, err
	}

	resp, err := c.send(ctx, http.MethodPost, path, body, false)
	if err != nil {
		return Identity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, c.authError(path, resp)
	}

	var payload authPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Identity{}, fmt.Errorf("failed to decode auth response: %w", err)
	}
	if !payload.Success || payload.Token == "" {
		return Identity{}, &LedgerError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	identity := Identity{UserID: payload.UserID, Username: payload.Username}
	if err := c.store.SetSession(identity, payload.Token); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

func (c *Client) authError(path string, resp *http.Response) error {
	message := decodeErrorMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusConflict:
		return ErrUsernameTaken
	default:
		return &LedgerError{StatusCode: resp.StatusCode, Message: message}
	}
}

// Logout revokes the session server-side on a best effort basis and always
// clears the local session store.
func (c *Client) Logout(ctx context.Context) error {
	defer c.store.ClearSession()

	if c.store.Token() == "" {
		return nil
	}

	resp, err := c.send(ctx, http.MethodPost, "/auth/logout", nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// RecordWorkout stores a ledger entry for the given date. Recording the same
// date twice succeeds and returns the existing entry unchanged.
func (c *Client) RecordWorkout(ctx context.Context, date time.Time) (WorkoutDay, error) {
	if !c.store.IsAuthenticated() {
		return WorkoutDay{}, ErrUnauthorized
	}

	body, err := json.Marshal(map[string]string{"date": date.Format(time.DateOnly)})
	if err != nil {
		return WorkoutDay{}, err
	}

	resp, err := c.send(ctx, http.MethodPost, "/workouts", body, true)
	if err != nil {
		return WorkoutDay{}, err
	}
	defer resp.Body.Close()

	if err := c.ledgerStatus(resp); err != nil {
		return WorkoutDay{}, err
	}

	var payload struct {
		ID   string `json:"id"`
		Date string `json:"date"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return WorkoutDay{}, fmt.Errorf("failed to decode workout response: %w", err)
	}

	parsed, err := time.ParseInLocation(time.DateOnly, payload.Date, time.UTC)
	if err != nil {
		return WorkoutDay{}, fmt.Errorf("failed to parse workout date: %w", err)
	}
	return WorkoutDay{ID: payload.ID, Date: parsed}, nil
}

// ListWorkoutDays returns every recorded date, sorted ascending.
func (c *Client) ListWorkoutDays(ctx context.Context) ([]time.Time, error) {
	if !c.store.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	resp, err := c.send(ctx, http.MethodGet, "/workouts", nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.ledgerStatus(resp); err != nil {
		return nil, err
	}

	var payload []struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode workout list: %w", err)
	}

	dates := make([]time.Time, 0, len(payload))
	for _, entry := range payload {
		parsed, err := time.ParseInLocation(time.DateOnly, entry.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse workout date: %w", err)
		}
		dates = append(dates, parsed)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// WeeklySummary fetches the aggregate for the current week.
func (c *Client) WeeklySummary(ctx context.Context) (WeeklySummary, error) {
	if !c.store.IsAuthenticated() {
		return WeeklySummary{}, ErrUnauthorized
	}

	resp, err := c.send(ctx, http.MethodGet, "/workouts/summary", nil, true)
	if err != nil {
		return WeeklySummary{}, err
	}
	defer resp.Body.Close()

	if err := c.ledgerStatus(resp); err != nil {
		return WeeklySummary{}, err
	}

	var payload struct {
		WeekStart     string `json:"weekStart"`
		DaysWorkedOut int    `json:"daysWorkedOut"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return WeeklySummary{}, fmt.Errorf("failed to decode weekly summary: %w", err)
	}

	weekStart, err := time.ParseInLocation(time.DateOnly, payload.WeekStart, time.UTC)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("failed to parse week start: %w", err)
	}
	return WeeklySummary{WeekStart: weekStart, DaysWorkedOut: payload.DaysWorkedOut}, nil
}

// MonthStats fetches month totals and the current streak.
func (c *Client) MonthStats(ctx context.Context) (MonthStats, error) {
	if !c.store.IsAuthenticated() {
		return MonthStats{}, ErrUnauthorized
	}

	resp, err := c.send(ctx, http.MethodGet, "/workouts/stats", nil, true)
	if err != nil {
		return MonthStats{}, err
	}
	defer resp.Body.Close()

	if err := c.ledgerStatus(resp); err != nil {
		return MonthStats{}, err
	}

	var payload struct {
		TotalDaysInMonth  int     `json:"totalDaysInMonth"`
		CompletedWorkouts int     `json:"completedWorkouts"`
		CompletionRate    float64 `json:"completionRate"`
		CurrentStreak     int     `json:"currentStreak"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return MonthStats{}, fmt.Errorf("failed to decode month stats: %w", err)
	}
	return MonthStats{
		TotalDaysInMonth:  payload.TotalDaysInMonth,
		CompletedWorkouts: payload.CompletedWorkouts,
		CompletionRate:    payload.CompletionRate,
		CurrentStreak:     payload.CurrentStreak,
	}, nil
}

// RemoveWorkout deletes the ledger entry for a date. This is the explicit
// removal action; the daily prompt never calls it.
func (c *Client) RemoveWorkout(ctx context.Context, date time.Time) error {
	if !c.store.IsAuthenticated() {
		return ErrUnauthorized
	}

	resp, err := c.send(ctx, http.MethodDelete, "/workouts/"+date.Format(time.DateOnly), nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.ledgerStatus(resp)
}

// send performs the HTTP exchange. Transport failures, including timeouts,
// are folded into ErrNetwork.
func (c *Client) send(ctx context.Context, method, path string, body []byte, authenticated bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		if token := c.store.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return resp, nil
}

// ledgerStatus applies the global 401 policy and maps remaining failures to
// LedgerError.
func (c *Client) ledgerStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.store.ClearSession()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		return &LedgerError{StatusCode: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
	default:
		return nil
	}
}

func decodeErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}
