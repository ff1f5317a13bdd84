package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// DownloadFile returns the byte content of a file on a provided URL.
func DownloadFile(ctx context.Context, path string) ([]byte, error) {
	return Download(ctx, http.DefaultClient, path, nil)
}

// Download performs a GET with the given headers and returns the body of a 200 response.
func Download(ctx context.Context, client *http.Client, path string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	for k, v := range header {
		req.Header[k] = v
	}

	res, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code on download: %d", res.StatusCode)
		log.Error().Err(err).Send()
		return nil, err
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		err = fmt.Errorf("error reading response %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}

	return buf, nil
}

// ReadIfExists returns the content at path. A missing file is reported through ok, not err.
func ReadIfExists(path string) (data []byte, ok bool, err error) {
	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error reading file %w", err)
	}

	return buf, true, nil
}

// WriteAtomic writes data to a uniquely named sibling of path and renames it into place,
// so readers never see a partial file.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), id.String()))

	log.Debug().Int("bytes", len(data)).Str("path", tmp).Msg("creating temp file")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("error creating temp file %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		removeTempFile(tmp)
		return fmt.Errorf("error writing temp file %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		removeTempFile(tmp)
		return fmt.Errorf("error syncing temp file %w", err)
	}

	if err := f.Close(); err != nil {
		removeTempFile(tmp)
		return fmt.Errorf("error closing temp file %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		removeTempFile(tmp)
		return fmt.Errorf("error replacing file %w", err)
	}

	log.Debug().Str("path", path).Msg("wrote file")

	return nil
}

func removeTempFile(path string) {
	err := os.Remove(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up temp file")
		return
	}
	log.Debug().Str("path", path).Msg("cleaned up temp file")
}
