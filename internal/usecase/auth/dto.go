package auth

// RegisterRequest represents the request payload for registering a new user.
type RegisterRequest struct {
	Name     string `validate:"required,min=3,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

// RegisterResponse represents the response payload after registration.
// It deliberately carries no credential material.
type RegisterResponse struct {
	ID int64
}

// LoginRequest represents the request payload for logging in.
type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginResponse represents the response payload after a successful login.
type LoginResponse struct {
	Token  string
	UserID int64
}

// ProfileResponse represents the account data returned to an authenticated
// user. The password hash is never included.
type ProfileResponse struct {
	ID    int64
	Name  string
	Email string
}
