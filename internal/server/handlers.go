package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"parking-garage/internal/parking"
)

// Handler holds mu for every request that touches the lot.
type Handler struct {
	parkingLot  *parking.InstrumentedParkingLot
	mu          sync.Locker
	serviceName string
}

func NewHandler(parkingLot *parking.InstrumentedParkingLot, mu sync.Locker, serviceName string) *Handler {
	return &Handler{
		parkingLot:  parkingLot,
		mu:          mu,
		serviceName: serviceName,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": h.serviceName,
		"meta":    extractMeta(r.Context()),
	})
}

func (h *Handler) ParkVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ParkVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	licensePlate := strings.TrimSpace(req.LicensePlate)
	if licensePlate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "License plate is required")
		return
	}

	kind, err := parking.ParseVehicleKind(req.VehicleKind)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Vehicle kind must be one of CAR, BIKE, TRUCK")
		return
	}

	h.mu.Lock()
	ticket, err := h.parkingLot.Park(ctx, parking.NewVehicle(licensePlate, kind))
	h.mu.Unlock()

	if errors.Is(err, parking.ErrNoAvailableSpot) {
		WriteError(ctx, w, http.StatusConflict, "No available spot")
		return
	}
	if err != nil {
		WriteError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked successfully", newTicketResponse(ticket))
}

func (h *Handler) UnparkVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UnparkVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.TicketID == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Ticket ID is required")
		return
	}

	h.mu.Lock()
	fee, err := h.parkingLot.Unpark(ctx, req.TicketID)
	h.mu.Unlock()

	if errors.Is(err, parking.ErrTicketNotFound) {
		WriteError(ctx, w, http.StatusNotFound, "Ticket not found")
		return
	}
	if err != nil {
		WriteError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteSuccess(ctx, w, "Vehicle unparked successfully", UnparkVehicleResponse{
		TicketID: req.TicketID,
		Fee:      fee,
	})
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ticketID := chi.URLParam(r, "ticketID")

	h.mu.Lock()
	ticket, ok := h.parkingLot.Ticket(ticketID)
	var response TicketResponse
	if ok {
		response = newTicketResponse(ticket)
	}
	h.mu.Unlock()

	if !ok {
		WriteError(ctx, w, http.StatusNotFound, "Ticket not found")
		return
	}

	WriteSuccess(ctx, w, "Ticket retrieved successfully", response)
}

func (h *Handler) FindTicketByLicensePlate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	licensePlate := chi.URLParam(r, "licensePlate")

	h.mu.Lock()
	ticket, ok := h.parkingLot.FindTicketByLicensePlate(ctx, licensePlate)
	var response TicketResponse
	if ok {
		response = newTicketResponse(ticket)
	}
	h.mu.Unlock()

	if !ok {
		WriteError(ctx, w, http.StatusNotFound, "Vehicle not found")
		return
	}

	WriteSuccess(ctx, w, "Vehicle found", response)
}

// GetAvailability lists free spots per floor. With ?kind= only spots that
// kind of vehicle could use are listed.
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		kind     parking.VehicleKind
		filtered bool
	)
	if raw := r.URL.Query().Get("kind"); raw != "" {
		parsed, err := parking.ParseVehicleKind(raw)
		if err != nil {
			WriteError(ctx, w, http.StatusBadRequest, "Vehicle kind must be one of CAR, BIKE, TRUCK")
			return
		}
		kind, filtered = parsed, true
	}

	h.mu.Lock()
	response := AvailabilityResponse{
		Capacity: h.parkingLot.Capacity(),
		Occupied: h.parkingLot.OccupiedCount(),
		Floors:   []FloorAvailability{},
	}

	for _, floor := range h.parkingLot.Floors() {
		floorAvailability := FloorAvailability{
			Floor: floor.Number,
			Spots: []SpotStatus{},
		}
		for _, spot := range floor.AvailableSpots() {
			if filtered && !spot.Fits(kind) {
				continue
			}
			floorAvailability.Spots = append(floorAvailability.Spots, SpotStatus{
				SpotID: spot.ID,
				Kind:   string(spot.Kind),
			})
		}
		floorAvailability.Available = len(floorAvailability.Spots)
		response.Available += floorAvailability.Available
		response.Floors = append(response.Floors, floorAvailability)
	}

	if filtered {
		if spot := h.parkingLot.FindAvailableSpot(ctx, kind); spot != nil {
			response.NextSpot = spot.ID
		}
	}
	h.mu.Unlock()

	WriteSuccess(ctx, w, "Availability retrieved successfully", response)
}
