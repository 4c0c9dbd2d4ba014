// Package openai uploads files to the OpenAI Files API.
//
// Requests go out exactly once with no client timeout. A non-200 reply is
// handed back verbatim so callers can relay it to their own clients.
package openai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	obs "github.com/fairyhunter13/file-parser/internal/adapter/observability"
	"github.com/fairyhunter13/file-parser/internal/domain"
)

// PurposeAssistants is the purpose attached to every uploaded file.
const PurposeAssistants = "assistants"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() { validate = validator.New() })
	return validate
}

// fileObject is the subset of the Files API response we rely on.
type fileObject struct {
	ID       string `json:"id" validate:"required"`
	Filename string `json:"filename"`
	Bytes    int64  `json:"bytes"`
	Purpose  string `json:"purpose"`
}

// FilesClient implements domain.FileUploader against the Files API.
type FilesClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewFilesClient constructs a FilesClient posting to url with apiKey as the
// bearer credential.
func NewFilesClient(url, apiKey string) *FilesClient {
	return &FilesClient{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// UploadFile posts r as a multipart "file" part named name, alongside
// purpose=assistants. Transport failures wrap domain.ErrRelayTransport.
func (c *FilesClient) UploadFile(ctx domain.Context, name string, r io.Reader) (domain.UploadResult, error) {
	lg := obs.LoggerFromContext(ctx)
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("%w: read file: %v", domain.ErrRelayTransport, err)
	}
	body, contentType, err := buildMultipart(name, data)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("%w: build multipart: %v", domain.ErrRelayTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("%w: build request: %v", domain.ErrRelayTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	lg.Debug("uploading file to openai",
		slog.String("url", c.url),
		slog.String("filename", name),
		slog.Int("bytes", len(data)))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		obs.ObserveRelay(0, time.Since(start))
		lg.Error("openai upload failed", slog.String("url", c.url), slog.Any("error", err))
		return domain.UploadResult{}, fmt.Errorf("%w: %v", domain.ErrRelayTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	obs.ObserveRelay(resp.StatusCode, time.Since(start))
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("%w: read response: %v", domain.ErrRelayTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		lg.Warn("openai upload rejected",
			slog.Int("status", resp.StatusCode),
			slog.Int("body_bytes", len(raw)))
		return domain.UploadResult{StatusCode: resp.StatusCode, Body: string(raw)}, nil
	}

	var obj fileObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.UploadResult{}, fmt.Errorf("%w: decode response: %v", domain.ErrRelayTransport, err)
	}
	if err := getValidator().Struct(obj); err != nil {
		return domain.UploadResult{}, fmt.Errorf("%w: response without file id: %v", domain.ErrRelayTransport, err)
	}
	lg.Info("openai upload complete", slog.String("file_id", obj.ID), slog.Int64("bytes", obj.Bytes))
	return domain.UploadResult{StatusCode: resp.StatusCode, FileID: obj.ID, Body: string(raw)}, nil
}

func buildMultipart(name string, data []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("purpose", PurposeAssistants); err != nil {
		return nil, "", err
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	h.Set("Content-Type", mimetype.Detect(data).String())
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
