// Package telemetry provides tooltip.Observer implementations that export
// controller activity to Prometheus and OpenTelemetry.
//
// Observers are passed to a controller with tooltip.WithObserver. Use Multi
// to attach more than one:
//
//	metrics := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	tracer := telemetry.NewTracer()
//	ctrl, err := tooltip.New(h, cfg,
//	    tooltip.WithObserver(telemetry.Multi{metrics, tracer}),
//	)
//
// Every observer method runs on the controller's event loop. The exported
// types are still safe to share between controllers on different loops.
package telemetry
