package bootstrap

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/sparknest-app/sparknest-backend/internal/gateways/videos"
)

// StartScheduler runs the periodic jobs: an hourly trending-cache refresh so
// the videos page mostly serves from Redis. Returns nil when there is
// nothing to schedule.
func StartScheduler(videoSvc *videos.Service) *cron.Cron {
	if videoSvc == nil {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		videoSvc.RefreshTrending(context.Background())
	})
	if err != nil {
		log.Printf("[error] operation=start_scheduler error=%v", err)
		return nil
	}

	c.Start()
	log.Printf("[info] operation=start_scheduler jobs=trending_refresh")
	return c
}
