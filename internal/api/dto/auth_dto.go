package dto

// TokenRequest is the body of POST /jwt. The endpoint trusts the caller
// supplied identity; there is no user store to check it against.
type TokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}
