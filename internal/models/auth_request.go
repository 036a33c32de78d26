package models

// RegisterRequest represents the request body for user registration.
// Presence and length are checked by the service so the client gets a specific message.
type RegisterRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
