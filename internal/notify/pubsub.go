// Package notify sends optional job-completion notifications over Google
// Cloud Pub/Sub so downstream loaders can react to finished crawls.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
)

// Notifier announces finished job runs.
type Notifier interface {
	JobFinished(ctx context.Context, jobID string, successful bool) error
	Close() error
}

// NoOp discards notifications. Used whenever no topic is configured.
type NoOp struct{}

// JobFinished for NoOp does nothing and always returns nil.
func (NoOp) JobFinished(_ context.Context, _ string, _ bool) error { return nil }

// Close for NoOp does nothing.
func (NoOp) Close() error { return nil }

// event is the published message payload.
type event struct {
	JobID      string `json:"job_id"`
	Successful bool   `json:"successful"`
}

// PubSub publishes job-completion events to a topic.
type PubSub struct {
	Client *pubsub.Client
	Topic  *pubsub.Topic
}

// NewPubSub creates a Pub/Sub client and verifies the topic exists, failing
// fast on startup misconfiguration. Authentication goes through Application
// Default Credentials.
func NewPubSub(ctx context.Context, projectID, topicID string) (*PubSub, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to check for topic existence: %w", err)
	}
	if !exists {
		_ = client.Close()
		return nil, fmt.Errorf("pubsub topic %q does not exist in project %q", topicID, projectID)
	}

	return &PubSub{Client: client, Topic: topic}, nil
}

// JobFinished publishes one event and waits for the server ack; the process
// exits right after the audit write, so fire-and-forget would lose messages.
func (p *PubSub) JobFinished(ctx context.Context, jobID string, successful bool) error {
	data, err := json.Marshal(event{JobID: jobID, Successful: successful})
	if err != nil {
		return fmt.Errorf("marshal job event: %w", err)
	}

	result := p.Topic.Publish(ctx, &pubsub.Message{Data: data})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish job event: %w", err)
	}
	return nil
}

// Close stops the topic's publisher and closes the client connection.
func (p *PubSub) Close() error {
	p.Topic.Stop()
	if err := p.Client.Close(); err != nil {
		return fmt.Errorf("close pubsub client: %w", err)
	}
	return nil
}
