package model

import "time"

// GenerateRequest represents a one-shot password generation request.
// Omitted toggles default to false and an omitted length to the server default.
type GenerateRequest struct {
	Length  int   `json:"length"`
	Numbers *bool `json:"numbers"`
	Symbols *bool `json:"symbols"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password     string `json:"password"`
	Length       int    `json:"length"`
	AlphabetSize int    `json:"alphabet_size"`
}

// SessionRequest creates or patches a session. Nil fields are left unchanged
// on update and take their defaults on create.
type SessionRequest struct {
	Length  *int  `json:"length"`
	Numbers *bool `json:"numbers"`
	Symbols *bool `json:"symbols"`
}

// SessionResponse is the current state of a generation session.
type SessionResponse struct {
	ID          string    `json:"id"`
	Password    string    `json:"password"`
	Length      int       `json:"length"`
	Numbers     bool      `json:"numbers"`
	Symbols     bool      `json:"symbols"`
	Generations int       `json:"generations"`
	UpdatedAt   time.Time `json:"updated_at"`
}
