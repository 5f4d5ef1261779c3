package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/jetcv-labs/jetcv-backend/internal/pkg/utils"
)

// Publishable is an event that knows its own topic.
type Publishable interface {
	GetEventTopicName() string
}

var ctx context.Context
var client *pubsub.Client

// InitPubSub connects the publisher when GOOGLE_PROJECT_ID is configured.
// Without a project id the publisher stays nil and Publish is a no-op, so
// deployments without GCP credentials keep working.
func InitPubSub() {
	projectID := viper.GetString("GOOGLE_PROJECT_ID")
	if projectID == "" {
		log.Info().Msg("GOOGLE_PROJECT_ID not set, event publishing disabled")
		return
	}
	ctx = context.Background()
	var err error
	client, err = pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing pub sub connection")
		return
	}
	log.Info().Msg("Successful pubsub init")
}

// Publish fires the event and forgets it; delivery failures are logged only.
func Publish(message Publishable) {
	if client == nil {
		return
	}

	t := client.Topic(message.GetEventTopicName())
	defer t.Stop()

	result := t.Publish(ctx, &pubsub.Message{Data: utils.JsonEncode(message)})

	go func(res *pubsub.PublishResult) {
		if _, err := res.Get(ctx); err != nil {
			log.Warn().Err(err).Msg(fmt.Sprintf("Failed to publish message for %s", message.GetEventTopicName()))
		}
	}(result)
}

func CloseClient() {
	if client != nil {
		client.Close()
	}
}
