package parking

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDemo(t *testing.T) {
	ipl, err := NewInstrumentedParkingLot(DefaultFloors, NewNoopTelemetryProvider())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, RunDemo(context.Background(), &out, ipl))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Initial available spots:\nFloor 1 available spots:\n1A (LARGE)\t"))
	assert.Contains(t, text, "Floor 3 available spots:\n")
	assert.Contains(t, text, "\nVehicle parked at spot: 1B\nTicket ID: T1\n")
	assert.True(t, strings.HasSuffix(text, "\nUnparking vehicle. Fee: $0\n"))

	assert.Zero(t, ipl.OccupiedCount())
}

func TestRunDemoWithoutFloors(t *testing.T) {
	ipl, err := NewInstrumentedParkingLot(0, NewNoopTelemetryProvider())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, RunDemo(context.Background(), &out, ipl))

	assert.Equal(t, "Initial available spots:\nNo available spot!\n", out.String())
}
