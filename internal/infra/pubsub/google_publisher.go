package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"marketplace/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// googlePubSubPublisher implements EventPublisher using Google Cloud Pub/Sub.
// One pubsub.Publisher per event topic.
type googlePubSubPublisher struct {
	client     *pubsub.Client
	publishers map[string]*pubsub.Publisher
	logger     *slog.Logger
}

// NewGooglePubSubPublisher creates a new Google Pub/Sub publisher. Both event
// topics must already exist in the project.
func NewGooglePubSubPublisher(ctx context.Context, projectID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topics := []string{service.TopicUserCreated, service.TopicOrderPlaced}
	publishers := make(map[string]*pubsub.Publisher, len(topics))

	for _, topicID := range topics {
		// Check if topic exists using TopicAdminClient
		topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
		_, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
			Topic: topicPath,
		})
		if err != nil {
			client.Close()

			return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
		}

		publishers[topicID] = client.Publisher(topicID)
	}

	logger.Info("Google Pub/Sub publisher initialized",
		slog.String("project_id", projectID),
		slog.Int("topic_count", len(publishers)),
	)

	return &googlePubSubPublisher{
		client:     client,
		publishers: publishers,
		logger:     logger,
	}, nil
}

// PublishUserCreated publishes a user.created event to Google Pub/Sub.
func (p *googlePubSubPublisher) PublishUserCreated(ctx context.Context, event *service.UserCreatedEvent) error {
	attributes := map[string]string{
		"user_id": strconv.FormatUint(uint64(event.UserID), 10),
		"role":    event.Role,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return p.publish(ctx, service.TopicUserCreated, event, attributes)
}

// PublishOrderPlaced publishes an order.placed event to Google Pub/Sub.
func (p *googlePubSubPublisher) PublishOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) error {
	attributes := map[string]string{
		"order_id": strconv.FormatUint(uint64(event.OrderID), 10),
		"shop_id":  strconv.FormatUint(uint64(event.ShopID), 10),
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return p.publish(ctx, service.TopicOrderPlaced, event, attributes)
}

func (p *googlePubSubPublisher) publish(ctx context.Context, topicID string, event any, attributes map[string]string) error {
	// Serialize the event to JSON
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	publisher, ok := p.publishers[topicID]
	if !ok {
		return errors.Errorf("no publisher for topic %s", topicID)
	}

	msg := &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	}

	p.logger.Info("[GooglePubSub] Publishing event",
		slog.String("topic_id", topicID),
	)

	// Publish message and wait for the result
	result := publisher.Publish(ctx, msg)

	serverID, err := result.Get(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.Info("[GooglePubSub] Event published successfully",
		slog.String("topic_id", topicID),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close releases Pub/Sub client resources
func (p *googlePubSubPublisher) Close() error {
	for _, publisher := range p.publishers {
		publisher.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}

	return nil
}
