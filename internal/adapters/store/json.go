package store

import (
	"ciesta/internal/adapters/file"
	"ciesta/internal/core/domain"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// JSON keeps the registry in a single human-readable file.
type JSON struct {
	path string
}

func NewJSON(path string) (*JSON, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	return &JSON{path: filepath.Clean(path)}, nil
}

func (j *JSON) Load(ctx context.Context) (domain.State, error) {
	if err := ctx.Err(); err != nil {
		return domain.State{}, err
	}

	data, ok, err := file.ReadIfExists(j.path)
	if err != nil {
		return domain.State{}, err
	}

	if !ok {
		log.Info().Str("path", j.path).Msg("no user registry file yet, starting empty")
		return domain.State{}, nil
	}

	return decode(data)
}

func (j *JSON) Save(ctx context.Context, state domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(state)
	if err != nil {
		return err
	}

	return file.WriteAtomic(j.path, data)
}
