package notify

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// LogNotifier implements the Notifier interface by writing messages to the log.
// It is the default when no delivery channel is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Publish(ctx context.Context, message string) error {
	log.WithField("notifier", "log").Infof("📨 %s", message)
	return nil
}
