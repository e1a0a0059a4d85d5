package parking

import (
	"errors"
	"io"
	"sort"
	"time"
)

const (
	DefaultFloors = 3
	HourlyRate    = 10.0

	// NotFoundFee is returned alongside ErrTicketNotFound.
	NotFoundFee = -1.0
)

var (
	ErrNoAvailableSpot = errors.New("no available spot")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrNilVehicle      = errors.New("vehicle is required")
)

type Option func(*ParkingLot)

func WithClock(now func() time.Time) Option {
	return func(pl *ParkingLot) {
		pl.now = now
	}
}

// ParkingLot is not safe for concurrent use.
type ParkingLot struct {
	floors  []*Floor
	spots   map[string]*Spot
	tickets map[string]*Ticket
	lastSeq uint64
	now     func() time.Time
}

func NewParkingLot(opts ...Option) *ParkingLot {
	pl := &ParkingLot{
		spots:   make(map[string]*Spot),
		tickets: make(map[string]*Ticket),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

func (pl *ParkingLot) InitializeFloors(numFloors int) {
	for i := 0; i < numFloors; i++ {
		floor := NewFloor(len(pl.floors) + 1)
		for _, spot := range floor.Spots() {
			pl.spots[spot.ID] = spot
		}
		pl.floors = append(pl.floors, floor)
	}
}

func (pl *ParkingLot) Floors() []*Floor {
	return pl.floors
}

func (pl *ParkingLot) Capacity() int {
	return len(pl.spots)
}

func (pl *ParkingLot) OccupiedCount() int {
	return len(pl.tickets)
}

func (pl *ParkingLot) Spot(id string) (*Spot, bool) {
	spot, ok := pl.spots[id]
	return spot, ok
}

func (pl *ParkingLot) Ticket(id string) (*Ticket, bool) {
	ticket, ok := pl.tickets[id]
	return ticket, ok
}

// FindTicketByLicensePlate returns the outstanding ticket for a plate. With
// several, the earliest issued wins.
func (pl *ParkingLot) FindTicketByLicensePlate(licensePlate string) (*Ticket, bool) {
	for _, ticket := range pl.ActiveTickets() {
		if ticket.Vehicle.LicensePlate == licensePlate {
			return ticket, true
		}
	}
	return nil, false
}

// ActiveTickets returns outstanding tickets in issue order.
func (pl *ParkingLot) ActiveTickets() []*Ticket {
	tickets := make([]*Ticket, 0, len(pl.tickets))
	for _, ticket := range pl.tickets {
		tickets = append(tickets, ticket)
	}

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].seq < tickets[j].seq
	})

	return tickets
}

func (pl *ParkingLot) FindAvailableSpot(kind VehicleKind) *Spot {
	for _, floor := range pl.floors {
		if spot := floor.FindAvailableSpot(kind); spot != nil {
			return spot
		}
	}
	return nil
}

func (pl *ParkingLot) Park(vehicle *Vehicle) (*Ticket, error) {
	if vehicle == nil {
		return nil, ErrNilVehicle
	}

	spot := pl.FindAvailableSpot(vehicle.Kind)
	if spot == nil {
		return nil, ErrNoAvailableSpot
	}

	spot.Park(vehicle)

	pl.lastSeq++
	ticket := &Ticket{
		ID:        ticketID(pl.lastSeq),
		Vehicle:   vehicle,
		SpotID:    spot.ID,
		EntryTime: pl.now(),
		seq:       pl.lastSeq,
	}
	pl.tickets[ticket.ID] = ticket

	return ticket, nil
}

func (pl *ParkingLot) Unpark(ticketID string) (float64, error) {
	ticket, ok := pl.tickets[ticketID]
	if !ok {
		return NotFoundFee, ErrTicketNotFound
	}

	if spot, ok := pl.spots[ticket.SpotID]; ok {
		spot.Leave()
	}

	fee := CalculateFee(pl.now().Sub(ticket.EntryTime))
	delete(pl.tickets, ticketID)

	return fee, nil
}

func (pl *ParkingLot) DisplayAllAvailableSpots(w io.Writer) {
	for _, floor := range pl.floors {
		floor.DisplayAvailableSpots(w)
	}
}

// CalculateFee charges HourlyRate per whole elapsed hour; partial hours are
// truncated.
func CalculateFee(elapsed time.Duration) float64 {
	hours := int64(elapsed / time.Hour)
	return float64(hours) * HourlyRate
}
