package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login" form:"login"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// AuthResponse is returned on successful sign-up or sign-in.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// StatusResponse is the common {success, error} envelope.
type StatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
