package models

// Account roles issued by the server. The client never assigns roles, it only
// mirrors whatever the authoritative copy says.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account represents a registered user profile. The server assigns the
// identifier and enforces email uniqueness; the local cache mirrors both but
// enforces neither.
type Account struct {
	// ID is the server-assigned unique identifier.
	ID int64 `json:"id"`

	// Name is the public display name.
	Name string `json:"name"`

	// Email is the unique login identifier. Uniqueness is a server-side
	// invariant only.
	Email string `json:"email"`

	// AvatarURL points at the profile picture, empty when the user has none.
	AvatarURL string `json:"avatar_url,omitempty"`

	// Role is one of the Role* constants.
	Role string `json:"role"`

	// Verified reports whether the account's email has been confirmed.
	Verified bool `json:"verified"`

	// Structured address fields, all optional.
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`

	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// TableName returns the name of the database table backing the local
// account cache.
func (a Account) TableName() string {
	return "accounts"
}
