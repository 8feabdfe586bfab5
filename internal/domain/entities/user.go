package entities

import (
	"fmt"
	"time"
)

// User represents a user in the system. Provider is a capability flag, not a
// subtype: providers and clients are drawn from the same table.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Provider  bool      `json:"provider" db:"provider"`
	AvatarID  *string   `json:"avatar_id,omitempty" db:"avatar_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Avatar *Avatar `json:"avatar,omitempty" db:"-"`
}

// Avatar is an uploaded profile image. Only the stored path is persisted; the
// public URL is derived from the configured base URL.
type Avatar struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Path string `json:"path" db:"path"`
}

// URL returns the public URL for the avatar file.
func (f *Avatar) URL(baseURL string) string {
	return fmt.Sprintf("%s/files/%s", baseURL, f.Path)
}

// ProviderSummary is the provider-directory row served by the cached read
// path.
type ProviderSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
