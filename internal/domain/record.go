package domain

import "time"

// Collection names understood by every store adapter.
const (
	CollectionReviews     = "reviews"
	CollectionSubmissions = "submissions"
	CollectionUsers       = "users"
)

// Submission statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User roles and account statuses.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserActive  = "Active"
	UserBlocked = "Blocked"
)

// Record carries the adapter-assigned identity and timestamps shared by
// every persisted entity. ID is unique within its collection and immutable
// after creation.
type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Review is a user rating attached to a catalog tool. ToolID is a loose
// reference; nothing enforces that the tool exists.
type Review struct {
	Record
	ToolID  string `json:"toolId"`
	Rating  int    `json:"rating"` // 1..5
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Comment string `json:"comment"`
	Helpful int    `json:"helpful"`
	Visible bool   `json:"visible"`
}

// Submission is a community-proposed catalog entry awaiting moderation.
type Submission struct {
	Record
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image,omitempty"`
	Status      string `json:"status"`
	// Reviewed is derived: true iff Status != pending.
	Reviewed bool `json:"reviewed"`
}

// User is a directory account. Password holds a bcrypt hash, never
// plaintext.
type User struct {
	Record
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// Sanitized returns a copy safe to hand to transport layers.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
