package geocode

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Zandino/Deltapp/internal/model"
)

// Client resolves free-text addresses against a Nominatim-compatible
// endpoint.
type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "deltapp/1.0")
	return &Client{http: client}
}

type nominatimResult struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		HouseNumber string `json:"house_number"`
		Road        string `json:"road"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		Postcode    string `json:"postcode"`
	} `json:"address"`
}

// Geocode returns the structured location for a free-text address. A nil
// location with a nil error means the address could not be resolved.
func (c *Client) Geocode(ctx context.Context, freeText string) (*model.Location, error) {
	var results []nominatimResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":              freeText,
			"format":         "json",
			"addressdetails": "1",
			"limit":          "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geocode request: status %d", resp.StatusCode())
	}
	if len(results) == 0 {
		return nil, nil
	}

	first := results[0]
	lat, _ := strconv.ParseFloat(first.Lat, 64)
	lon, _ := strconv.ParseFloat(first.Lon, 64)

	city := first.Address.City
	if city == "" {
		city = first.Address.Town
	}
	if city == "" {
		city = first.Address.Village
	}

	address := first.Address.Road
	if first.Address.HouseNumber != "" {
		address = first.Address.HouseNumber + " " + first.Address.Road
	}

	return &model.Location{
		Address:    address,
		City:       city,
		PostalCode: first.Address.Postcode,
		Latitude:   lat,
		Longitude:  lon,
	}, nil
}
