package analytics

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// RunTrendRefresher refreshes the trends snapshot every interval until ctx
// is done. Failures are logged and retried on the next tick.
func (s *Service) RunTrendRefresher(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.WithField("interval", interval).Info("⏱️  Trend refresher started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			trends, err := s.RefreshTrends(ctx)
			if err != nil {
				log.WithError(err).Error("Error refreshing rating trends")
				continue
			}
			log.WithFields(log.Fields{
				"recent": trends.OverallRecent,
				"month":  trends.OverallMonth,
				"change": trends.OverallChange,
			}).Info("Rating trends refreshed")
		}
	}
}
