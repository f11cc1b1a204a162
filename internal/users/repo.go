package users

import "context"

// Repo stores user credentials. Emails are compared case-insensitively.
type Repo interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID int64) (User, error)
	List(ctx context.Context) ([]User, error)
}
