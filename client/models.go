package client

// AuthStatus is returned from GET /auth/status.
type AuthStatus struct {
	SetupRequired bool `json:"setupRequired"`
}

// LoginRequest is the JSON body for POST /auth/login and POST /auth/setup.
type LoginRequest struct {
	Password string `json:"password"`
}

// ChangePasswordRequest is the JSON body for POST /auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// TokenResponse is returned from the auth endpoints that mint a session.
type TokenResponse struct {
	Token string `json:"token"`
}

// Profile is the admin-editable identity shown on the public page.
type Profile struct {
	Name      string `json:"name"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Link is one card on the page: an external link or a free-text block,
// ordered by Position.
type Link struct {
	ID       string `json:"id,omitempty"`
	Kind     string `json:"kind"` // "link" or "text"
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	Text     string `json:"text,omitempty"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

// ReorderRequest is the JSON body for PUT /api/links/reorder.
type ReorderRequest struct {
	IDs []string `json:"ids"`
}

// Theme holds the page appearance settings.
type Theme struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	AccentColor     string `json:"accentColor,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty"`
	ButtonStyle     string `json:"buttonStyle,omitempty"`
}

// Page is the public page content returned from GET /api/page.
type Page struct {
	Profile Profile `json:"profile"`
	Links   []Link  `json:"links"`
	Theme   Theme   `json:"theme"`
}

// ErrorResponse is the error body returned by the server.
type ErrorResponse struct {
	Error string `json:"error"`
}
