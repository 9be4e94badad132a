package entity

import "github.com/google/uuid"

// SessionUser is the authenticated principal of a request
type SessionUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// Session is the resolved caller of a request
type Session struct {
	User SessionUser `json:"user"`
}
