package dtos

import "strings"

// UserInput is the body of POST and PUT /api/users.
type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Normalize trims surrounding whitespace and lowercases the email.
func (in UserInput) Normalize() UserInput {
	return UserInput{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
	}
}
