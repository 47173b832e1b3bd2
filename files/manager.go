package files

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/andyle182810/boxsdk/httpclient"
	"github.com/andyle182810/boxsdk/pagination"
	"github.com/andyle182810/boxsdk/validator"
)

const (
	filesPath     = "/files"
	previewSuffix = "/preview.png"
	queryPage     = "page"

	headerContentType = "Content-Type"
	acceptAny         = "*/*"
)

var (
	ErrInvalidFileID  = errors.New("files: file id must be a numeric Box ID")
	ErrInvalidPage    = errors.New("files: page must be at least 1")
	ErrInvalidRequest = errors.New("files: invalid request")
	ErrEncodeUpload   = errors.New("files: failed to encode upload")
	ErrEmptyResponse  = errors.New("files: empty response body")
)

// Manager exposes the Box file endpoints.
type Manager struct {
	client    *httpclient.Client
	upload    *httpclient.Client
	validator *validator.Validator
}

type Option func(*Manager)

// WithUploadClient routes uploads to a separate host such as upload.box.com.
// Without it uploads go through the API client.
func WithUploadClient(client *httpclient.Client) Option {
	return func(m *Manager) {
		if client != nil {
			m.upload = client
		}
	}
}

func NewManager(client *httpclient.Client, opts ...Option) *Manager {
	m := &Manager{
		client:    client,
		upload:    client,
		validator: validator.New(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Manager) GetFile(ctx context.Context, id string, fields ...string) (*File, error) {
	if !validator.IsBoxID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFileID, id)
	}

	file, err := httpclient.GetJSON[File](ctx, m.client, filePath(id), httpclient.WithFields(fields...))
	if err != nil {
		return nil, err
	}

	if file == nil {
		return nil, ErrEmptyResponse
	}

	return file, nil
}

// GetPreview downloads one page of the PNG preview. The total page count comes
// from the Link header and is 1 when Box does not advertise one.
func (m *Manager) GetPreview(ctx context.Context, id string, page int) (*Preview, error) {
	if !validator.IsBoxID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFileID, id)
	}

	if page < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	resp, err := httpclient.DoRaw(ctx, m.client, http.MethodGet, filePath(id)+previewSuffix,
		httpclient.WithQuery(queryPage, strconv.Itoa(page)),
		httpclient.WithRequestHeader(httpclient.HeaderAccept, acceptAny),
	)
	if err != nil {
		return nil, err
	}

	if resp.Result == nil {
		return nil, ErrEmptyResponse
	}

	contentType, _ := resp.Headers.Get(headerContentType)

	return &Preview{
		Content:     *resp.Result,
		ContentType: contentType,
		CurrentPage: page,
		TotalPages:  pagination.CountPagesFromHeaders(resp.Headers),
	}, nil
}

func filePath(id string) string {
	return filesPath + "/" + url.PathEscape(id)
}
