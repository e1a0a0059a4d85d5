package parking

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"parking-garage/internal/logging"
)

type InstrumentedParkingLot struct {
	*ParkingLot
	telemetry *TelemetryProvider

	// Metrics
	parkingOperations   metric.Int64Counter
	unparkingOperations metric.Int64Counter
	occupancyGauge      metric.Int64UpDownCounter
	operationDuration   metric.Float64Histogram
	totalSpotsGauge     metric.Int64UpDownCounter
	feeHistogram        metric.Float64Histogram
}

func NewInstrumentedParkingLot(numFloors int, telemetry *TelemetryProvider, opts ...Option) (*InstrumentedParkingLot, error) {
	baseParkingLot := NewParkingLot(opts...)
	baseParkingLot.InitializeFloors(numFloors)

	meter := telemetry.Meter()

	parkingOperations, err := meter.Int64Counter("parking_operations_total",
		metric.WithDescription("Total number of park operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	unparkingOperations, err := meter.Int64Counter("unparking_operations_total",
		metric.WithDescription("Total number of unpark operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("parking_lot_occupancy",
		metric.WithDescription("Current number of occupied parking spots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of parking lot operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	totalSpotsGauge, err := meter.Int64UpDownCounter("parking_lot_total_spots",
		metric.WithDescription("Total number of parking spots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	feeHistogram, err := meter.Float64Histogram("parking_fee_dollars",
		metric.WithDescription("Fees charged on unpark"),
		metric.WithUnit("USD"),
		metric.WithExplicitBucketBoundaries(0, 10, 20, 50, 100, 250, 500))
	if err != nil {
		return nil, err
	}

	ipl := &InstrumentedParkingLot{
		ParkingLot:          baseParkingLot,
		telemetry:           telemetry,
		parkingOperations:   parkingOperations,
		unparkingOperations: unparkingOperations,
		occupancyGauge:      occupancyGauge,
		operationDuration:   operationDuration,
		totalSpotsGauge:     totalSpotsGauge,
		feeHistogram:        feeHistogram,
	}

	totalSpotsGauge.Add(context.Background(), int64(baseParkingLot.Capacity()))

	return ipl, nil
}

func (ipl *InstrumentedParkingLot) Park(ctx context.Context, vehicle *Vehicle) (*Ticket, error) {
	if vehicle == nil {
		return nil, ErrNilVehicle
	}

	tracer := ipl.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.park",
		trace.WithAttributes(
			attribute.String("vehicle.license_plate", vehicle.LicensePlate),
			attribute.String("vehicle.kind", string(vehicle.Kind)),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("finding_available_spot")

	ticket, err := ipl.ParkingLot.Park(vehicle)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "park"),
		attribute.String("vehicle_kind", string(vehicle.Kind)),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
		logging.Info(ctx, "no spot available",
			"license_plate", vehicle.LicensePlate,
			"vehicle_kind", vehicle.Kind)
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(
			attribute.String("ticket.id", ticket.ID),
			attribute.String("spot.id", ticket.SpotID),
		)
		span.AddEvent("spot_assigned", trace.WithAttributes(
			attribute.String("spot_id", ticket.SpotID),
		))
		ipl.occupancyGauge.Add(ctx, 1)
		logging.Debug(ctx, "vehicle parked",
			"ticket_id", ticket.ID,
			"spot_id", ticket.SpotID,
			"license_plate", vehicle.LicensePlate)
	}

	ipl.parkingOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ipl.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return ticket, err
}

func (ipl *InstrumentedParkingLot) Unpark(ctx context.Context, ticketID string) (float64, error) {
	tracer := ipl.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.unpark",
		trace.WithAttributes(
			attribute.String("ticket.id", ticketID),
		))
	defer span.End()

	start := time.Now()

	// Capture the ticket before it is discarded.
	ticket, found := ipl.ParkingLot.Ticket(ticketID)
	if found {
		span.SetAttributes(
			attribute.String("spot.id", ticket.SpotID),
			attribute.String("vehicle.license_plate", ticket.Vehicle.LicensePlate),
			attribute.String("vehicle.kind", string(ticket.Vehicle.Kind)),
		)
	}

	span.AddEvent("releasing_spot")

	fee, err := ipl.ParkingLot.Unpark(ticketID)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "unpark"),
	}

	switch {
	case errors.Is(err, ErrTicketNotFound):
		span.AddEvent("ticket_not_found")
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "not_found"))
		logging.Info(ctx, "unpark with unknown ticket", "ticket_id", ticketID)
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	default:
		span.SetAttributes(attribute.Float64("parking.fee", fee))
		span.AddEvent("spot_released")
		labels = append(labels,
			attribute.String("status", "success"),
			attribute.String("vehicle_kind", string(ticket.Vehicle.Kind)),
		)
		ipl.occupancyGauge.Add(ctx, -1)
		ipl.feeHistogram.Record(ctx, fee, metric.WithAttributes(
			attribute.String("vehicle_kind", string(ticket.Vehicle.Kind)),
		))
		logging.Debug(ctx, "vehicle unparked",
			"ticket_id", ticketID,
			"spot_id", ticket.SpotID,
			"fee", fee)
	}

	ipl.unparkingOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ipl.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return fee, err
}

func (ipl *InstrumentedParkingLot) FindAvailableSpot(ctx context.Context, kind VehicleKind) *Spot {
	tracer := ipl.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.find_available_spot",
		trace.WithAttributes(
			attribute.String("vehicle.kind", string(kind)),
		))
	defer span.End()

	start := time.Now()

	spot := ipl.ParkingLot.FindAvailableSpot(kind)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "find_available_spot"),
		attribute.String("vehicle_kind", string(kind)),
	}

	if spot == nil {
		span.AddEvent("no_spot_found")
		labels = append(labels, attribute.String("status", "not_found"))
	} else {
		span.SetAttributes(attribute.String("spot.id", spot.ID))
		labels = append(labels, attribute.String("status", "found"))
	}

	ipl.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return spot
}

func (ipl *InstrumentedParkingLot) ActiveTickets(ctx context.Context) []*Ticket {
	tracer := ipl.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.active_tickets")
	defer span.End()

	start := time.Now()

	tickets := ipl.ParkingLot.ActiveTickets()

	duration := time.Since(start).Seconds()

	span.SetAttributes(
		attribute.Int("active_tickets_count", len(tickets)),
		attribute.Int("total_capacity", ipl.Capacity()),
	)

	labels := []attribute.KeyValue{
		attribute.String("operation", "active_tickets"),
		attribute.String("status", "success"),
	}

	ipl.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return tickets
}

func (ipl *InstrumentedParkingLot) FindTicketByLicensePlate(ctx context.Context, licensePlate string) (*Ticket, bool) {
	tracer := ipl.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.find_ticket_by_license_plate",
		trace.WithAttributes(
			attribute.String("vehicle.license_plate", licensePlate),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("searching_by_license_plate")

	ticket, found := ipl.ParkingLot.FindTicketByLicensePlate(licensePlate)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "find_ticket_by_license_plate"),
	}

	if !found {
		span.AddEvent("vehicle_not_found")
		labels = append(labels, attribute.String("status", "not_found"))
	} else {
		span.SetAttributes(
			attribute.String("ticket.id", ticket.ID),
			attribute.String("spot.id", ticket.SpotID),
		)
		span.AddEvent("vehicle_found")
		labels = append(labels, attribute.String("status", "found"))
	}

	ipl.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return ticket, found
}
