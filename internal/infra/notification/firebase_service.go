// Package notification delivers push notifications through Firebase Cloud Messaging.
package notification

import (
	"context"
	"fmt"

	"marketplace/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Firebase limits multicast sends to 500 tokens per request.
const maxMulticastTokens = 500

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a new Firebase push service instance
func NewFirebaseService(ctx context.Context, credentialsPath string) (service.PushService, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseService{
		client: client,
	}, nil
}

// SendToToken sends a push notification to a single device token
func (s *firebaseService) SendToToken(ctx context.Context, token, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	_, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// SendToTokens sends push notifications to multiple device tokens
func (s *firebaseService) SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, err error) {
	if len(tokens) == 0 {
		return 0, 0, nil
	}

	if len(tokens) > maxMulticastTokens {
		return 0, 0, fmt.Errorf("token count exceeds limit: %d (max %d)", len(tokens), maxMulticastTokens)
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	response, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to send multicast notification: %w", err)
	}

	return response.SuccessCount, response.FailureCount, nil
}
