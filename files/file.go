package files

import "time"

type FolderMini struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	SequenceID string `json:"sequence_id,omitempty"`
	ETag       string `json:"etag,omitempty"`
	Name       string `json:"name,omitempty"`
}

type UserMini struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Login string `json:"login,omitempty"`
}

type File struct {
	Type        string      `json:"type"`
	ID          string      `json:"id"`
	SequenceID  string      `json:"sequence_id,omitempty"`
	ETag        string      `json:"etag,omitempty"`
	SHA1        string      `json:"sha1,omitempty"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Size        int64       `json:"size,omitempty"`
	Extension   string      `json:"extension,omitempty"`
	CreatedAt   *time.Time  `json:"created_at,omitempty"`
	ModifiedAt  *time.Time  `json:"modified_at,omitempty"`
	ItemStatus  string      `json:"item_status,omitempty"`
	Parent      *FolderMini `json:"parent,omitempty"`
	CreatedBy   *UserMini   `json:"created_by,omitempty"`
	ModifiedBy  *UserMini   `json:"modified_by,omitempty"`
	OwnedBy     *UserMini   `json:"owned_by,omitempty"`
}

// Preview is one rendered page of a file preview.
type Preview struct {
	Content     []byte
	ContentType string
	CurrentPage int
	TotalPages  int
}
