// Package jobs provides scheduled background tasks for the station.
//
// Jobs are built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// TransitSimulationJob advances every in-transit order toward its destination on a
// fixed interval (5 seconds by default). It pauses itself while no order is in transit
// and is woken by the start-delivery flow.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(advanceTransitHandler, 5*time.Second, logger)
//	startDelivery := commands.NewStartDeliveryCommandHandler(uowFactory, coordinator, jobManager.Transit(), notifier)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A tick that cannot list the in-transit orders is logged and retried on the next
// interval. Failures of single orders are handled and logged by the command handler.
package jobs
