package types

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResendVerifyRequest asks for the verification email to be resent.
type ResendVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AuthResponse is returned from login and refresh.
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type AuthUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
