package notify_test

import (
	"context"
	"encoding/json"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/JakeFAU/nhl-stats-crawler/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func newFakeClient(t *testing.T, ctx context.Context) *pubsub.Client {
	t.Helper()

	srv := pstest.NewServer()
	t.Cleanup(func() { srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	client, err := pubsub.NewClient(ctx, "project-id", option.WithGRPCConn(conn))
	require.NoError(t, err)
	return client
}

func TestPubSubJobFinished(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient(t, ctx)

	topic, err := client.CreateTopic(ctx, "job-events")
	require.NoError(t, err)
	sub, err := client.CreateSubscription(ctx, "job-events-sub", pubsub.SubscriptionConfig{Topic: topic})
	require.NoError(t, err)

	notifier := &notify.PubSub{Client: client, Topic: topic}
	require.NoError(t, notifier.JobFinished(ctx, "job-123", false))

	recvCtx, cancel := context.WithCancel(ctx)
	c := make(chan *pubsub.Message, 1)
	go func() {
		_ = sub.Receive(recvCtx, func(_ context.Context, msg *pubsub.Message) {
			msg.Ack()
			c <- msg
			cancel()
		})
	}()

	msg := <-c
	var got struct {
		JobID      string `json:"job_id"`
		Successful bool   `json:"successful"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, "job-123", got.JobID)
	assert.False(t, got.Successful)

	assert.NoError(t, notifier.Close())
}

func TestNewPubSubMissingTopic(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient(t, ctx)

	topic := client.Topic("never-created")
	exists, err := topic.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNoOp(t *testing.T) {
	n := notify.NoOp{}
	assert.NoError(t, n.JobFinished(context.Background(), "job-123", true))
	assert.NoError(t, n.Close())
}
