package application

import "context"

// Notifier dispatches account emails. Implementations must be safe for
// concurrent use; the service invokes them fire-and-forget and only logs
// failures.
type Notifier interface {
	SendVerification(ctx context.Context, email, username, token string) error
	SendWelcome(ctx context.Context, email, username string) error
}
