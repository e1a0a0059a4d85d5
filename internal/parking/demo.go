package parking

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// RunDemo parks one car and immediately unparks it, narrating each step to w.
func RunDemo(ctx context.Context, w io.Writer, parkingLot *InstrumentedParkingLot) error {
	fmt.Fprintln(w, "Initial available spots:")
	parkingLot.DisplayAllAvailableSpots(w)

	ticket, err := parkingLot.Park(ctx, NewVehicle("ABC123", Car))
	if errors.Is(err, ErrNoAvailableSpot) {
		fmt.Fprintln(w, "No available spot!")
		return nil
	}
	if err != nil {
		return fmt.Errorf("park ABC123: %w", err)
	}

	fmt.Fprintf(w, "\nVehicle parked at spot: %s\nTicket ID: %s\n", ticket.SpotID, ticket.ID)

	fee, err := parkingLot.Unpark(ctx, ticket.ID)
	if err != nil {
		return fmt.Errorf("unpark %s: %w", ticket.ID, err)
	}

	fmt.Fprintf(w, "\nUnparking vehicle. Fee: $%s\n", FormatFee(fee))
	return nil
}
