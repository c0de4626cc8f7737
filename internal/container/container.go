package container

import (
	app "road-inspector/internal/application"
	"road-inspector/internal/domain/port"
	"road-inspector/internal/tracking"
)

type Container struct {
	SubscriptionService *app.SubscriptionService
	InspectionService   *app.InspectionService
	Runner              *app.Runner
}

func New(subRepo port.SubscriberRepository, detector port.CandidateDetector, tracker *tracking.Tracker, sink port.ReportSink, queue app.QueueConfig) *Container {
	subscriptionService := app.NewSubscriptionService(subRepo)
	inspectionService := app.NewInspectionService(detector, tracker, sink)

	return &Container{
		SubscriptionService: subscriptionService,
		InspectionService:   inspectionService,
		Runner:              app.NewRunner(inspectionService, queue),
	}
}
