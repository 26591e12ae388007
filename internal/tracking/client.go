package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to a 17track-compatible shipment tracking API.
type Client struct {
	http *resty.Client
}

func New(baseURL, token string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetHeader("17token", token).
		SetHeader("Content-Type", "application/json")
	return &Client{http: client}
}

type apiRequest struct {
	Number  string `json:"number"`
	Carrier int    `json:"carrier,omitempty"`
}

type apiResponse struct {
	Code int `json:"code"`
	Data struct {
		Accepted []json.RawMessage `json:"accepted"`
		Rejected []struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		} `json:"rejected"`
	} `json:"data"`
}

type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message,omitempty"`
}

// Validate registers the number with the carrier API; rejection means the
// number is not trackable.
func (c *Client) Validate(ctx context.Context, number string) (*ValidationResult, error) {
	var result apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody([]apiRequest{{Number: number}}).
		SetResult(&result).
		Post("/track/v2.2/register")
	if err != nil {
		return nil, fmt.Errorf("tracking register: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tracking register: status %d", resp.StatusCode())
	}

	if result.Code == 0 && len(result.Data.Accepted) > 0 {
		return &ValidationResult{IsValid: true}, nil
	}
	message := "numéro de suivi invalide"
	if len(result.Data.Rejected) > 0 && result.Data.Rejected[0].Error.Message != "" {
		message = result.Data.Rejected[0].Error.Message
	}
	return &ValidationResult{IsValid: false, Message: message}, nil
}

type Status struct {
	Status    string          `json:"status"`
	LastEvent json.RawMessage `json:"lastEvent,omitempty"`
}

type trackInfo struct {
	Track struct {
		LatestStatus struct {
			Status string `json:"status"`
		} `json:"latest_status"`
		LatestEvent json.RawMessage `json:"latest_event"`
	} `json:"track_info"`
}

// FetchStatus returns the latest known status for a registered number.
func (c *Client) FetchStatus(ctx context.Context, number string, carrier int) (*Status, error) {
	var result apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody([]apiRequest{{Number: number, Carrier: carrier}}).
		SetResult(&result).
		Post("/track/v2.2/gettrackinfo")
	if err != nil {
		return nil, fmt.Errorf("tracking lookup: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tracking lookup: status %d", resp.StatusCode())
	}
	if result.Code != 0 || len(result.Data.Accepted) == 0 {
		return nil, fmt.Errorf("tracking lookup: number %s not found", number)
	}

	var info trackInfo
	if err := json.Unmarshal(result.Data.Accepted[0], &info); err != nil {
		return nil, fmt.Errorf("tracking lookup: %w", err)
	}
	return &Status{
		Status:    info.Track.LatestStatus.Status,
		LastEvent: info.Track.LatestEvent,
	}, nil
}
