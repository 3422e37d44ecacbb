package user

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

func NewUser(id, username, passwordHash string, role Role) (*User, error) {
	if id == "" || username == "" || passwordHash == "" {
		return nil, ErrMissingField
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}

	return &User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
