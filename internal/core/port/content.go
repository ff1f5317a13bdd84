package port

import (
	"ciesta/internal/core/domain"
	"context"
)

type NewsFetcher interface {
	TopHeadlines(ctx context.Context) ([]domain.Article, error)
}

type WeatherFetcher interface {
	Current(ctx context.Context, city string) (domain.Weather, error)
}

type IPFetcher interface {
	PublicIP(ctx context.Context) (string, error)
}

type ImagePicker interface {
	// Random returns the URL of a random image from the named collection.
	Random(ctx context.Context, collection string) (string, error)
}
