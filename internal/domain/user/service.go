package user

import "context"

type UserService interface {
	// List returns every registered user, newest first.
	List(ctx context.Context) ([]UserResponse, error)

	// Get returns one user's profile.
	Get(ctx context.Context, id string) (UserResponse, error)
}
