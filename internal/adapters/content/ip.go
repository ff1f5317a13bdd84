package content

import (
	"context"
	"fmt"
	"net/http"
)

const DefaultIPURL = "https://api.ipify.org?format=json"

type IP struct {
	client   *http.Client
	endpoint string
}

func NewIP(endpoint string) *IP {
	if endpoint == "" {
		endpoint = DefaultIPURL
	}

	return &IP{client: newHTTPClient(), endpoint: endpoint}
}

func (i *IP) PublicIP(ctx context.Context) (string, error) {
	var res struct {
		IP string `json:"ip"`
	}

	if err := getJSON(ctx, i.client, i.endpoint, nil, &res); err != nil {
		return "", fmt.Errorf("error fetching public ip: %w", err)
	}

	if res.IP == "" {
		return "", fmt.Errorf("empty ip in response")
	}

	return res.IP, nil
}
