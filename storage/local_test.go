package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadDownloadList(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Upload(ctx, "provider_docs/hanif_enterprise.txt", strings.NewReader("Hanif")))
	require.NoError(t, s.Upload(ctx, "provider_docs/green_line.txt", strings.NewReader("Green Line")))
	require.NoError(t, s.Upload(ctx, "data.json", strings.NewReader("{}")))

	data, err := ReadAll(ctx, s, "provider_docs/green_line.txt")
	require.NoError(t, err)
	assert.Equal(t, "Green Line", string(data))

	keys, err := s.List(ctx, "provider_docs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"provider_docs/green_line.txt", "provider_docs/hanif_enterprise.txt"}, keys)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLocalStorage_DownloadMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Download(context.Background(), "missing.json")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	err = s.Upload(context.Background(), "../outside.txt", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}
