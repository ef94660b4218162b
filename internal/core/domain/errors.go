package domain

import "errors"

// Terminal error taxonomy surfaced to the HTTP layer. Ownership
// mismatches fold into ErrTodoNotFound so a caller can never confirm
// the existence of another user's todo.
var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrTodoNotFound    = errors.New("todo not found")
	ErrUserNotFound    = errors.New("user not found")
)
