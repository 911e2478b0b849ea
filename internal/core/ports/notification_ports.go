package ports

import "context"

type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, token string) error
	SendPasswordResetEmail(ctx context.Context, email, token string) error
}

// FileStore holds uploaded assets such as profile pictures.
type FileStore interface {
	Delete(ctx context.Context, key string) error
}
