// Package content fetches the data behind the premium and utility commands.
package content

import (
	"ciesta/internal/adapters/file"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultTimeout = 15 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

func getJSON(ctx context.Context, client *http.Client, url string, header http.Header, v any) error {
	data, err := file.Download(ctx, client, url, header)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}
