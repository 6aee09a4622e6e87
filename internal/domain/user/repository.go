package user

import "context"

type UserRepository interface {
	// Create inserts a new user and returns it with generated fields set.
	Create(ctx context.Context, u User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)

	GetByEmail(ctx context.Context, email string) (User, error)

	// List returns every user, newest first. The staff list and the
	// daily roster are both built from it.
	List(ctx context.Context) ([]User, error)
}
