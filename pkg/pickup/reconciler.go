package pickup

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartReconciler runs the settlement repair pass on a fixed interval.
func StartReconciler(service PickupService, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			repaired, err := service.Reconcile(context.Background())
			if err != nil {
				log.Printf("[Reconciler] error: %v", err)
				return
			}
			if repaired > 0 {
				log.Printf("[Reconciler] repaired %d uncredited pickup(s)", repaired)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
