package models

// UserResponse is the public view of a user account
type UserResponse struct {
	ID    string `json:"id"` // UUID
	Email string `json:"email"`
}

// RegisterResponse represents the response after user registration
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse represents the response after successful authentication
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"` // JWT token
	User    UserResponse `json:"user"`
}
