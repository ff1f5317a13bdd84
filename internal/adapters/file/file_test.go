package file

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadFile(t *testing.T) {
	tests := []struct {
		name       string
		inputBytes []byte
		status     int
		wantErr    bool
	}{
		{
			name:       "success",
			inputBytes: []byte("test\n"),
			status:     http.StatusOK,
			wantErr:    false,
		},
		{
			name:       "not found",
			inputBytes: []byte("not found"),
			status:     http.StatusNotFound,
			wantErr:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, err := w.Write(tc.inputBytes)
				assert.NoError(t, err)
			}))
			defer srv.Close()

			res, err := DownloadFile(t.Context(), srv.URL)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.inputBytes, res)
			}
		})
	}
}

func TestDownloadSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	res, err := Download(t.Context(), srv.Client(), srv.URL, http.Header{"X-Api-Key": {"secret"}})
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), res)
}

func TestWriteAtomic(t *testing.T) {
	tests := []struct {
		name    string
		first   []byte
		second  []byte
		wantLen int
	}{
		{
			name:    "creates nested file",
			first:   []byte(`{"users":[]}`),
			wantLen: 12,
		},
		{
			name:    "replaces existing content",
			first:   []byte("a much longer first version"),
			second:  []byte("short"),
			wantLen: 5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "database", "user.json")

			require.NoError(t, WriteAtomic(path, tc.first))
			if tc.second != nil {
				require.NoError(t, WriteAtomic(path, tc.second))
			}

			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, int64(tc.wantLen), stat.Size())

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp files must not be left behind")
		})
	}
}

func TestReadIfExists(t *testing.T) {
	dir := t.TempDir()

	_, ok, err := ReadIfExists(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.False(t, ok)

	path := filepath.Join(dir, "present.json")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	data, ok, err := ReadIfExists(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("data"), data)

	_, _, err = ReadIfExists(dir)
	require.Error(t, err)
}
