package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"parking-garage/internal/parking"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type ParkVehicleRequest struct {
	LicensePlate string `json:"license_plate"`
	VehicleKind  string `json:"vehicle_kind"`
}

type UnparkVehicleRequest struct {
	TicketID string `json:"ticket_id"`
}

type TicketResponse struct {
	TicketID     string    `json:"ticket_id"`
	SpotID       string    `json:"spot_id"`
	LicensePlate string    `json:"license_plate"`
	VehicleKind  string    `json:"vehicle_kind"`
	EntryTime    time.Time `json:"entry_time"`
}

type UnparkVehicleResponse struct {
	TicketID string  `json:"ticket_id"`
	Fee      float64 `json:"fee"`
}

type SpotStatus struct {
	SpotID string `json:"spot_id"`
	Kind   string `json:"kind"`
}

type FloorAvailability struct {
	Floor     int          `json:"floor"`
	Available int          `json:"available"`
	Spots     []SpotStatus `json:"spots"`
}

type AvailabilityResponse struct {
	Capacity  int                 `json:"capacity"`
	Occupied  int                 `json:"occupied"`
	Available int                 `json:"available"`
	NextSpot  string              `json:"next_spot,omitempty"`
	Floors    []FloorAvailability `json:"floors"`
}

func newTicketResponse(ticket *parking.Ticket) TicketResponse {
	return TicketResponse{
		TicketID:     ticket.ID,
		SpotID:       ticket.SpotID,
		LicensePlate: ticket.Vehicle.LicensePlate,
		VehicleKind:  string(ticket.Vehicle.Kind),
		EntryTime:    ticket.EntryTime,
	}
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Meta:    extractMeta(ctx),
	})
}
