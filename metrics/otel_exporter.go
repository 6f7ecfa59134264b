package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	// OTel meters and instruments
	meter             metric.Meter
	ownerKindGauge    metric.Int64ObservableGauge
	outcomeGauge      metric.Int64ObservableGauge
	integrationsGauge metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	// Create Prometheus exporter
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	// Create meter with service info
	meter := meterProvider.Meter(
		"hookledger",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	// Register metrics instruments
	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	// Retained exchanges gauge (per owner kind)
	oe.ownerKindGauge, err = oe.meter.Int64ObservableGauge(
		"exchange.retained.count",
		metric.WithDescription("Number of retained exchanges per owner kind"),
		metric.WithUnit("{exchanges}"),
		metric.WithInt64Callback(oe.observeOwnerKinds),
	)
	if err != nil {
		return fmt.Errorf("creating retained exchanges gauge: %w", err)
	}

	// Exchange outcome gauge (failed vs succeeded)
	oe.outcomeGauge, err = oe.meter.Int64ObservableGauge(
		"exchange.outcome.count",
		metric.WithDescription("Number of retained exchanges by response outcome"),
		metric.WithUnit("{exchanges}"),
		metric.WithInt64Callback(oe.observeOutcomes),
	)
	if err != nil {
		return fmt.Errorf("creating outcome gauge: %w", err)
	}

	// Integrations gauge (per type discriminator)
	oe.integrationsGauge, err = oe.meter.Int64ObservableGauge(
		"integration.count",
		metric.WithDescription("Number of integrations per type"),
		metric.WithUnit("{integrations}"),
		metric.WithInt64Callback(oe.observeIntegrations),
	)
	if err != nil {
		return fmt.Errorf("creating integrations gauge: %w", err)
	}

	return nil
}

// observeOwnerKinds is a callback that reports retained exchange counts
func (oe *OTelExporter) observeOwnerKinds(ctx context.Context, observer metric.Int64Observer) error {
	m, err := oe.collector.Collect(ctx)
	if err != nil {
		return err
	}

	for kind, count := range m.ExchangesByOwnerKind {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("owner.kind", kind),
		))
	}

	return nil
}

// observeOutcomes is a callback that reports exchange counts by outcome
func (oe *OTelExporter) observeOutcomes(ctx context.Context, observer metric.Int64Observer) error {
	m, err := oe.collector.Collect(ctx)
	if err != nil {
		return err
	}

	observer.Observe(m.FailedExchanges, metric.WithAttributes(
		attribute.String("exchange.outcome", "failed"),
	))
	observer.Observe(m.SucceededExchanges, metric.WithAttributes(
		attribute.String("exchange.outcome", "succeeded"),
	))

	return nil
}

// observeIntegrations is a callback that reports integration counts by type
func (oe *OTelExporter) observeIntegrations(ctx context.Context, observer metric.Int64Observer) error {
	m, err := oe.collector.Collect(ctx)
	if err != nil {
		return err
	}

	for integrationType, count := range m.IntegrationsByType {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("integration.type", integrationType),
		))
	}

	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
