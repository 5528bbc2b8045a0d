package ports

import "context"

// Notifier delivers the account verification email. A returned error aborts
// the registration request; the created record is not rolled back.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, to, firstName, token string) error
}
