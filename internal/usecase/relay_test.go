package usecase_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/file-parser/internal/domain"
	"github.com/fairyhunter13/file-parser/internal/usecase"
)

type recordingUploader struct {
	dir     string
	name    string
	body    []byte
	existed bool
	result  domain.UploadResult
	err     error
}

func (u *recordingUploader) UploadFile(ctx domain.Context, name string, r io.Reader) (domain.UploadResult, error) {
	u.name = name
	_, statErr := os.Stat(filepath.Join(u.dir, name))
	u.existed = statErr == nil
	b, err := io.ReadAll(r)
	if err != nil {
		return domain.UploadResult{}, err
	}
	u.body = b
	return u.result, u.err
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "temp files left behind")
}

func TestRelay_Success(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	up := &recordingUploader{dir: dir, result: domain.UploadResult{StatusCode: 200, FileID: "file-123"}}
	svc := usecase.NewRelayService(up, dir)

	res, err := svc.Relay(context.Background(), []byte("%PDF-1.4 body"))
	require.NoError(t, err)
	assert.Equal(t, "file-123", res.FileID)
	assert.True(t, up.existed, "file must exist while uploading")
	assert.True(t, strings.HasPrefix(up.name, "upload-"))
	assert.True(t, strings.HasSuffix(up.name, ".pdf"))
	assert.Equal(t, []byte("%PDF-1.4 body"), up.body)
	requireEmptyDir(t, dir)
}

func TestRelay_SuffixFollowsFormat(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"PK\x03\x04": ".xlsx",
		"a,b\n1,2":   ".csv",
		"":           ".csv",
	}
	for in, suffix := range cases {
		dir := t.TempDir()
		up := &recordingUploader{dir: dir, result: domain.UploadResult{StatusCode: 200, FileID: "f"}}
		_, err := usecase.NewRelayService(up, dir).Relay(context.Background(), []byte(in))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(up.name, suffix), "%q -> %s", in, up.name)
		requireEmptyDir(t, dir)
	}
}

func TestRelay_RemoteErrorIsResult(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	up := &recordingUploader{dir: dir, result: domain.UploadResult{StatusCode: 401, Body: `{"error":"unauthorized"}`}}

	res, err := usecase.NewRelayService(up, dir).Relay(context.Background(), []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, 401, res.StatusCode)
	assert.Equal(t, `{"error":"unauthorized"}`, res.Body)
	requireEmptyDir(t, dir)
}

func TestRelay_TransportErrorCleansUp(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	up := &recordingUploader{dir: dir, err: errors.Join(domain.ErrRelayTransport, errors.New("connection refused"))}

	_, err := usecase.NewRelayService(up, dir).Relay(context.Background(), []byte("x"))
	require.ErrorIs(t, err, domain.ErrRelayTransport)
	requireEmptyDir(t, dir)
}

func TestRelay_MissingTempDir(t *testing.T) {
	t.Parallel()
	up := &recordingUploader{}
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := usecase.NewRelayService(up, missing).Relay(context.Background(), []byte("x"))
	require.ErrorIs(t, err, domain.ErrRelayTransport)
	assert.Empty(t, up.name, "uploader must not be called")
}

func TestRelay_NilUploader(t *testing.T) {
	t.Parallel()
	_, err := usecase.RelayService{}.Relay(context.Background(), []byte("x"))
	require.ErrorIs(t, err, domain.ErrRelayTransport)
}
