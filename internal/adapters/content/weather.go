package content

import (
	"ciesta/internal/core/domain"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const DefaultWeatherURL = "https://api.weatherapi.com/v1/current.json"

// Weather reads current conditions from a weatherapi.com compatible endpoint.
type Weather struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

func NewWeather(endpoint, apiKey string) *Weather {
	if endpoint == "" {
		endpoint = DefaultWeatherURL
	}

	return &Weather{client: newHTTPClient(), endpoint: endpoint, apiKey: apiKey}
}

type weatherResponse struct {
	Location struct {
		Name      string `json:"name"`
		Region    string `json:"region"`
		Country   string `json:"country"`
		TimeZone  string `json:"tz_id"`
		LocalTime string `json:"localtime"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		TempF     float64 `json:"temp_f"`
		Humidity  int     `json:"humidity"`
		WindKph   float64 `json:"wind_kph"`
		WindDir   string  `json:"wind_dir"`
		Condition struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
	} `json:"current"`
}

func (w *Weather) Current(ctx context.Context, city string) (domain.Weather, error) {
	q := url.Values{}
	q.Set("key", w.apiKey)
	q.Set("q", city)

	var res weatherResponse
	if err := getJSON(ctx, w.client, w.endpoint+"?"+q.Encode(), nil, &res); err != nil {
		return domain.Weather{}, fmt.Errorf("error fetching weather for %s: %w", city, err)
	}

	return domain.Weather{
		City:          res.Location.Name,
		Region:        res.Location.Region,
		Country:       res.Location.Country,
		TimeZone:      res.Location.TimeZone,
		LocalTime:     res.Location.LocalTime,
		TempC:         res.Current.TempC,
		TempF:         res.Current.TempF,
		Humidity:      res.Current.Humidity,
		WindKph:       res.Current.WindKph,
		WindDir:       res.Current.WindDir,
		Condition:     res.Current.Condition.Text,
		ConditionIcon: iconURL(res.Current.Condition.Icon),
	}, nil
}

// iconURL completes the protocol-relative icon paths the API returns.
func iconURL(icon string) string {
	if strings.HasPrefix(icon, "//") {
		return "https:" + icon
	}

	return icon
}
