package parking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedParkingLotIntegration(t *testing.T) {
	telemetry := NewNoopTelemetryProvider()
	defer func() {
		assert.NoError(t, telemetry.Shutdown(context.Background()))
	}()

	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	ipl, err := NewInstrumentedParkingLot(DefaultFloors, telemetry, WithClock(clock.Now))
	require.NoError(t, err)
	assert.Equal(t, 78, ipl.Capacity())

	ctx := context.Background()

	spot := ipl.FindAvailableSpot(ctx, Truck)
	require.NotNil(t, spot)
	assert.Equal(t, "1A", spot.ID)

	ticket, err := ipl.Park(ctx, NewVehicle("TRK42", Truck))
	require.NoError(t, err)
	assert.Equal(t, "1A", ticket.SpotID)

	tickets := ipl.ActiveTickets(ctx)
	require.Len(t, tickets, 1)
	assert.Equal(t, ticket.ID, tickets[0].ID)

	clock.Advance(2*time.Hour + 15*time.Minute)

	fee, err := ipl.Unpark(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, fee)

	assert.Empty(t, ipl.ActiveTickets(ctx))

	fee, err = ipl.Unpark(ctx, ticket.ID)
	assert.ErrorIs(t, err, ErrTicketNotFound)
	assert.Equal(t, NotFoundFee, fee)
}

func TestInstrumentedParkingLotFull(t *testing.T) {
	ipl, err := NewInstrumentedParkingLot(1, NewNoopTelemetryProvider())
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 13; i++ {
		_, err := ipl.Park(ctx, NewVehicle("CAR", Car))
		require.NoError(t, err)
	}

	assert.Nil(t, ipl.FindAvailableSpot(ctx, Car))

	_, err = ipl.Park(ctx, NewVehicle("ONE-MORE", Car))
	assert.ErrorIs(t, err, ErrNoAvailableSpot)
}

func TestInstrumentedParkNilVehicle(t *testing.T) {
	ipl, err := NewInstrumentedParkingLot(1, NewNoopTelemetryProvider())
	require.NoError(t, err)

	ticket, err := ipl.Park(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilVehicle)
	assert.Nil(t, ticket)
}

func TestInstrumentedFindTicketByLicensePlate(t *testing.T) {
	ipl, err := NewInstrumentedParkingLot(1, NewNoopTelemetryProvider())
	require.NoError(t, err)

	ctx := context.Background()
	parked, err := ipl.Park(ctx, NewVehicle("FIND1", Car))
	require.NoError(t, err)

	ticket, ok := ipl.FindTicketByLicensePlate(ctx, "FIND1")
	require.True(t, ok)
	assert.Equal(t, parked.ID, ticket.ID)

	_, ok = ipl.FindTicketByLicensePlate(ctx, "GONE")
	assert.False(t, ok)
}
