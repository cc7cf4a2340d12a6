// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field schedules with
// seconds) and only ever invoke application commands.
//
// # Available Jobs
//
// 1. CourierPresenceJob - marks couriers unavailable when they hold no order
// and have not reported a location within the configured window. It never
// touches a courier's order slot.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(&releaseHandler, jobs.PresenceConfig{
//		Window:   15 * time.Minute,
//		Schedule: jobs.DefaultPresenceSchedule,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. A zero window
// disables the job entirely.
package jobs
