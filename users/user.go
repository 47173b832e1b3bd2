package users

import (
	"encoding/json"
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleCoadmin = "coadmin"
	RoleUser    = "user"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Enterprise struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	Type          string      `json:"type"`
	ID            string      `json:"id"`
	Name          string      `json:"name,omitempty"`
	Login         string      `json:"login,omitempty"`
	CreatedAt     *time.Time  `json:"created_at,omitempty"`
	ModifiedAt    *time.Time  `json:"modified_at,omitempty"`
	Language      string      `json:"language,omitempty"`
	Timezone      string      `json:"timezone,omitempty"`
	SpaceAmount   int64       `json:"space_amount,omitempty"`
	SpaceUsed     int64       `json:"space_used,omitempty"`
	MaxUploadSize int64       `json:"max_upload_size,omitempty"`
	Status        string      `json:"status,omitempty"`
	JobTitle      string      `json:"job_title,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	Address       string      `json:"address,omitempty"`
	AvatarURL     string      `json:"avatar_url,omitempty"`
	Role          string      `json:"role,omitempty"`
	IsSyncEnabled *bool       `json:"is_sync_enabled,omitempty"`
	Enterprise    *Enterprise `json:"enterprise,omitempty"`
}

// UpdateRequest carries the attributes to change on the user identified by ID.
// Zero values are left untouched on the server.
type UpdateRequest struct {
	ID            string `json:"-"                         validate:"required,boxid"`
	Name          string `json:"name,omitempty"            validate:"omitempty,max=50"`
	Login         string `json:"login,omitempty"           validate:"omitempty,email"`
	Role          string `json:"role,omitempty"            validate:"omitempty,oneof=coadmin user"`
	Language      string `json:"language,omitempty"        validate:"omitempty,min=2,max=5"`
	Timezone      string `json:"timezone,omitempty"`
	JobTitle      string `json:"job_title,omitempty"       validate:"omitempty,max=100"`
	Phone         string `json:"phone,omitempty"           validate:"omitempty,max=100"`
	Address       string `json:"address,omitempty"         validate:"omitempty,max=255"`
	Status        string `json:"status,omitempty"          validate:"omitempty,oneof=active inactive cannot_delete_edit cannot_delete_edit_upload"` //nolint:lll
	SpaceAmount   *int64 `json:"space_amount,omitempty"    validate:"omitempty,gte=-1"`
	IsSyncEnabled *bool  `json:"is_sync_enabled,omitempty"`

	// RemoveFromEnterprise rolls the user out of the enterprise, turning the
	// account into a standalone free user.
	RemoveFromEnterprise bool `json:"-"`
}

func (r UpdateRequest) MarshalJSON() ([]byte, error) {
	type plain UpdateRequest

	if !r.RemoveFromEnterprise {
		return json.Marshal(plain(r))
	}

	return json.Marshal(struct {
		plain

		Enterprise *Enterprise `json:"enterprise"`
	}{
		plain:      plain(r),
		Enterprise: nil,
	})
}

// Page is one offset-paginated slice of an enterprise user listing.
type Page struct {
	Entries    []User `json:"entries"`
	TotalCount int    `json:"total_count"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
	HasMore    bool   `json:"has_more"`
}

type ListOptions struct {
	FilterTerm string
	UserType   string `validate:"omitempty,oneof=all managed external"`
	Offset     int    `validate:"gte=0"`
	Limit      int    `validate:"gte=0"`
	Fields     []string
}

type collection struct {
	Entries    []User `json:"entries"`
	TotalCount int    `json:"total_count"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}
