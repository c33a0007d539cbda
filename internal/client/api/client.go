package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/askhatb/challenge-on/internal/models"
)

// Client is the HTTP client for the ChallengeOn API. A non-empty Token is
// attached to every request as a bearer credential.
type Client struct {
	BaseURL string
	Token   string

	http *http.Client
}

// NewClient creates a client for the given server URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthResponse is the body returned by the sign-in endpoint.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// ChallengeInput is the wire shape for creating or updating a challenge.
type ChallengeInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	ReminderTime string `json:"reminderTime,omitempty"`
}

// ProgressInput is the wire shape for creating or updating a progress log.
type ProgressInput struct {
	ChallengeID string `json:"challengeId,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description"`
	MediaURL    string `json:"mediaUrl,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
}

// do performs one request and decodes the JSON response into out (if non-nil).
// API error bodies become plain errors so callers can show them to the user.
func (c *Client) do(method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %v", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %v", err)
		}
	}
	return nil
}

// SignIn exchanges a Google ID token for a session token and stores the
// session token on the client for subsequent calls.
func (c *Client) SignIn(googleIDToken string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"token": googleIDToken}
	if err := c.do(http.MethodPost, "/api/auth/google", body, &resp); err != nil {
		return nil, err
	}
	c.Token = resp.Token
	return &resp, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me() (*models.User, error) {
	var user models.User
	if err := c.do(http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListChallenges fetches the caller's challenges with nested progress logs.
func (c *Client) ListChallenges() ([]models.Challenge, error) {
	var challenges []models.Challenge
	if err := c.do(http.MethodGet, "/api/challenges", nil, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// GetChallenge fetches one challenge by id.
func (c *Client) GetChallenge(id string) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := c.do(http.MethodGet, "/api/challenges/"+id, nil, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

// CreateChallenge creates a new challenge.
func (c *Client) CreateChallenge(input ChallengeInput) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := c.do(http.MethodPost, "/api/challenges", input, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

// UpdateChallenge replaces a challenge's mutable fields.
func (c *Client) UpdateChallenge(id string, input ChallengeInput) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := c.do(http.MethodPut, "/api/challenges/"+id, input, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

// DeleteChallenge removes a challenge and its logs.
func (c *Client) DeleteChallenge(id string) error {
	return c.do(http.MethodDelete, "/api/challenges/"+id, nil, nil)
}

// ListProgress fetches a challenge's progress logs, most recent first.
func (c *Client) ListProgress(challengeID string) ([]models.ProgressLog, error) {
	var logs []models.ProgressLog
	if err := c.do(http.MethodGet, "/api/progress/challenge/"+challengeID, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// CreateProgress records a new progress log.
func (c *Client) CreateProgress(input ProgressInput) (*models.ProgressLog, error) {
	var log models.ProgressLog
	if err := c.do(http.MethodPost, "/api/progress", input, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// UpdateProgress replaces a progress log's mutable fields.
func (c *Client) UpdateProgress(id string, input ProgressInput) (*models.ProgressLog, error) {
	var log models.ProgressLog
	if err := c.do(http.MethodPut, "/api/progress/"+id, input, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// DeleteProgress removes a progress log.
func (c *Client) DeleteProgress(id string) error {
	return c.do(http.MethodDelete, "/api/progress/"+id, nil, nil)
}
