package service

import "context"

// PushService defines the interface for delivering push notifications to
// user devices. Delivery is best-effort; the caller persists the
// notification regardless of push outcome.
type PushService interface {
	// SendToToken sends a push notification to a single device token.
	SendToToken(ctx context.Context, token, title, body string, data map[string]string) error

	// SendToTokens sends a push notification to multiple device tokens
	// (provider limits apply) and reports per-batch success/failure counts.
	SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, err error)
}
