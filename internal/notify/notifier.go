// Package notify pushes real-time messages to buyers over PubNub. Delivery is
// best effort: a failed publish is logged and dropped, never retried into a
// request path.
package notify

import (
	"context"
	"fmt"
	"log"

	pubnub "github.com/pubnub/go"
)

type Config struct {
	PublishKey   string
	SubscribeKey string
}

// Enabled reports whether the credentials are present. Without them the
// service runs with the no-op notifier.
func (c Config) Enabled() bool {
	return c.PublishKey != "" && c.SubscribeKey != ""
}

type PubNubNotifier struct {
	client *pubnub.PubNub
}

func NewPubNubNotifier(cfg Config) *PubNubNotifier {
	pnCfg := pubnub.NewConfig()
	pnCfg.PublishKey = cfg.PublishKey
	pnCfg.SubscribeKey = cfg.SubscribeKey

	return &PubNubNotifier{client: pubnub.NewPubNub(pnCfg)}
}

// Publish sends message to the user's private channel.
func (n *PubNubNotifier) Publish(ctx context.Context, userID int64, message any) error {
	channel := fmt.Sprintf("user-%d", userID)

	_, _, err := n.client.Publish().
		Channel(channel).
		Message(message).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}

	return nil
}

// NoopNotifier is used when PubNub credentials are not configured.
type NoopNotifier struct{}

func (NoopNotifier) Publish(_ context.Context, userID int64, _ any) error {
	log.Printf("notifications disabled, dropping message for user %d", userID)
	return nil
}
