package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// requestCounter counts storefront API requests. Nil when telemetry is
// disabled; handlers check before adding.
var requestCounter metric.Int64Counter

// initTelemetry wires OTLP metric and trace exporters when a collector
// endpoint is configured. Without COLLECTOR_SERVICE_ADDR it is a no-op and
// the returned shutdown does nothing.
func initTelemetry(ctx context.Context, log *logrus.Logger) func(context.Context) {
	addr := os.Getenv("COLLECTOR_SERVICE_ADDR")
	if addr == "" {
		log.Info("COLLECTOR_SERVICE_ADDR not set, telemetry disabled")
		return func(context.Context) {}
	}

	metricExp, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(addr),
		otlpmetricgrpc.WithInsecure())
	if err != nil {
		log.Warnf("failed to init metric exporter: %v", err)
		return func(context.Context) {}
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp, sdkmetric.WithInterval(15*time.Second))),
	)
	otel.SetMeterProvider(mp)

	traceExp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(addr),
		otlptracegrpc.WithInsecure())
	if err != nil {
		log.Warnf("failed to init trace exporter: %v", err)
		return func(ctx context.Context) { _ = mp.Shutdown(ctx) }
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	meter := mp.Meter("storefront")
	requestCounter, err = meter.Int64Counter("storefront.requests",
		metric.WithDescription("storefront API requests"))
	if err != nil {
		log.Warnf("failed to create request counter: %v", err)
	}

	log.Infof("telemetry exporting to %s", addr)
	return func(ctx context.Context) {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
	}
}
