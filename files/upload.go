package files

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"

	"github.com/andyle182810/boxsdk/httpclient"
)

const (
	uploadPath = "/files/content"

	partAttributes = "attributes"
	partFile       = "file"
)

// UploadRequest describes a new file. ParentID "0" is the root folder.
type UploadRequest struct {
	Name     string `json:"name"      validate:"required,max=255"`
	ParentID string `json:"parent_id" validate:"required,boxid"`
	Content  []byte `json:"-"`
}

type uploadAttributes struct {
	Name   string    `json:"name"`
	Parent folderRef `json:"parent"`
}

type folderRef struct {
	ID string `json:"id"`
}

type uploadResult struct {
	TotalCount int    `json:"total_count"`
	Entries    []File `json:"entries"`
}

// UploadFile creates a file through the upload host. Box expects the
// attributes part before the file part.
func (m *Manager) UploadFile(ctx context.Context, req UploadRequest, fields ...string) (*File, error) {
	if err := m.validator.Validate(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	body, err := encodeUpload(req)
	if err != nil {
		return nil, err
	}

	result, err := httpclient.PostJSON[uploadResult](ctx, m.upload, uploadPath, body, httpclient.WithFields(fields...))
	if err != nil {
		return nil, err
	}

	if result == nil || len(result.Entries) == 0 {
		return nil, ErrEmptyResponse
	}

	return &result.Entries[0], nil
}

func encodeUpload(req UploadRequest) (*httpclient.RawBody, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	attributes, err := json.Marshal(uploadAttributes{
		Name:   req.Name,
		Parent: folderRef{ID: req.ParentID},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeUpload, err)
	}

	if err := writer.WriteField(partAttributes, string(attributes)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeUpload, err)
	}

	part, err := writer.CreateFormFile(partFile, req.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeUpload, err)
	}

	if _, err := part.Write(req.Content); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeUpload, err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeUpload, err)
	}

	return &httpclient.RawBody{
		ContentType: writer.FormDataContentType(),
		Data:        buf.Bytes(),
	}, nil
}
