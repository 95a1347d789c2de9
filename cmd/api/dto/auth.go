package dto

// LoginRequest is the credential pair posted to /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"hunter2"`
}

// IdentityDTO describes the logged-in admin, returned by login and
// /api/auth/me.
type IdentityDTO struct {
	ID       string `json:"id" example:"665f1f77bcf86cd799439011"`
	Username string `json:"username" example:"admin"`
}
