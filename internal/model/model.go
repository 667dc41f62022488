package model

// Role values used in chat transcripts and completion requests.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is a single exchange unit in a chat transcript. Only assistant turns
// ever carry a non-nil Reasoning; user turns always have it nil. Turns are
// append-only: nothing edits a stored turn in place.
type Turn struct {
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	Reasoning *string `json:"reasoning"`
}

// Chat owns one transcript plus the document context built from uploads.
// The transcript and the document name list are persisted as serialized
// blobs on the chat row and rewritten whole on every change.
type Chat struct {
	ID            string   `json:"id"`
	UserID        int64    `json:"-"`
	Name          string   `json:"name"`
	Turns         []Turn   `json:"messages"`
	DocumentText  string   `json:"pdf_text"`
	DocumentNames []string `json:"uploaded_pdfs"`
}

// ChatSummary is the list-view projection of a chat.
type ChatSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is an account that owns chats. Latitude and Longitude are either
// both set or both nil; partial states are rejected at the API boundary.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Token        *string
	Latitude     *float64
	Longitude    *float64
}

// HasLocation reports whether both coordinates are known.
func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}
