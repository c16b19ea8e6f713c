package dto

// AccountView is the public view of an account. The password digest is
// never part of a response body.
type AccountView struct {
	Email string `json:"email"`
}

// AuthResponse is the success body for /auth/register and /auth/login.
type AuthResponse struct {
	User  AccountView `json:"user"`
	Token string      `json:"token"`
}

// ProfileResponse is the success body for /auth/me.
type ProfileResponse struct {
	User AccountView `json:"user"`
}

// ErrorResponse is the error body for all auth endpoints.
type ErrorResponse struct {
	Message string `json:"message"`
}
