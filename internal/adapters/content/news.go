package content

import (
	"ciesta/internal/core/domain"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const DefaultNewsURL = "https://newsapi.org/v2/top-headlines"

// News reads top headlines from a newsapi.org compatible endpoint.
type News struct {
	client   *http.Client
	endpoint string
	apiKey   string
	source   string
	pageSize int
}

func NewNews(endpoint, apiKey string) *News {
	if endpoint == "" {
		endpoint = DefaultNewsURL
	}

	return &News{
		client:   newHTTPClient(),
		endpoint: endpoint,
		apiKey:   apiKey,
		source:   "bbc-news",
		pageSize: 5,
	}
}

type newsResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"articles"`
}

func (n *News) TopHeadlines(ctx context.Context) ([]domain.Article, error) {
	q := url.Values{}
	q.Set("sources", n.source)
	q.Set("pageSize", fmt.Sprint(n.pageSize))

	var res newsResponse
	err := getJSON(ctx, n.client, n.endpoint+"?"+q.Encode(), http.Header{"X-Api-Key": {n.apiKey}}, &res)
	if err != nil {
		return nil, fmt.Errorf("error fetching headlines: %w", err)
	}

	if res.Status != "" && res.Status != "ok" {
		return nil, fmt.Errorf("news api returned %s: %s", res.Status, res.Message)
	}

	articles := make([]domain.Article, 0, len(res.Articles))
	for _, a := range res.Articles {
		articles = append(articles, domain.Article{Title: a.Title, Description: a.Description, URL: a.URL})
	}

	return articles, nil
}
