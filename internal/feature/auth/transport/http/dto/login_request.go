// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// LoginReq is the body of POST /sessions.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the signed session token.
type TokenResponse struct {
	Token string `json:"token"`
}
