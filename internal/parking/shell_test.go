package parking

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runShell(t *testing.T, input string) string {
	t.Helper()

	telemetry := NewNoopTelemetryProvider()
	ipl, err := NewInstrumentedParkingLot(DefaultFloors, telemetry)
	require.NoError(t, err)

	var out bytes.Buffer
	NewShell(ipl, &sync.Mutex{}, telemetry, strings.NewReader(input), &out).Run(context.Background())
	return out.String()
}

func TestShellParkAndUnpark(t *testing.T) {
	out := runShell(t, "park ABC123 CAR\npark BIG1 truck\nunpark T1\n")

	assert.Equal(t,
		"Vehicle parked at spot: 1B\nTicket ID: T1\n"+
			"Vehicle parked at spot: 1A\nTicket ID: T2\n"+
			"Unparking vehicle. Fee: $0\n",
		out)
}

func TestShellUnknownTicket(t *testing.T) {
	out := runShell(t, "unpark T9999\n")
	assert.Equal(t, "Ticket not found: T9999\n", out)
}

func TestShellRejectsBadInput(t *testing.T) {
	out := runShell(t, "park ABC123\npark ABC123 BUS\nunpark\nfly away\n")

	assert.Contains(t, out, "Usage: park <license_plate> <CAR|BIKE|TRUCK>\n")
	assert.Contains(t, out, "Invalid vehicle kind: BUS\n")
	assert.Contains(t, out, "Usage: unpark <ticket_id>\n")
	assert.Contains(t, out, "Unknown command: fly\n")
}

func TestShellStatusAndTickets(t *testing.T) {
	out := runShell(t, "tickets\npark B1 BIKE\ntickets\nstatus\n")

	assert.Contains(t, out, "No active tickets\n")
	assert.Contains(t, out, "Ticket\tSpot\tLicense Plate\tKind\nT1\t1A\tB1\tBIKE\n")
	assert.Contains(t, out, "Floor 1 available spots:\n1B (COMPACT)\t")
	assert.Contains(t, out, "Floor 3 available spots:\n3A (LARGE)")
}

func TestShellStopsAtExit(t *testing.T) {
	out := runShell(t, "\nexit\npark ABC123 CAR\n")
	assert.Empty(t, out)
}

func TestShellStopsWhenContextDone(t *testing.T) {
	telemetry := NewNoopTelemetryProvider()
	ipl, err := NewInstrumentedParkingLot(1, telemetry)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	NewShell(ipl, &sync.Mutex{}, telemetry, strings.NewReader("park ABC123 CAR\n"), &out).Run(ctx)

	assert.Empty(t, out.String())
	assert.Zero(t, ipl.OccupiedCount())
}

func TestFormatFee(t *testing.T) {
	assert.Equal(t, "0", FormatFee(0))
	assert.Equal(t, "30", FormatFee(30))
	assert.Equal(t, "-1", FormatFee(NotFoundFee))
}

func TestShellTicketLookup(t *testing.T) {
	out := runShell(t, "park ABC123 CAR\nticket T1\nticket T9\nticket\n")

	assert.Contains(t, out, "Ticket ID: T1\nSpot: 1B\nLicense Plate: ABC123\nKind: CAR\nEntry: ")
	assert.Contains(t, out, "Ticket not found: T9\n")
	assert.Contains(t, out, "Usage: ticket <ticket_id>\n")
}

func TestShellFindByLicensePlate(t *testing.T) {
	out := runShell(t, "park B1 BIKE\npark XYZ789 TRUCK\nfind XYZ789\nfind NOPE\nunpark T2\nfind XYZ789\n")

	assert.Contains(t, out, "Ticket ID: T2\nSpot: 1C\nLicense Plate: XYZ789\nKind: TRUCK\n")
	assert.Equal(t, 2, strings.Count(out, "Not found\n"))
}

func TestShellHelpListsLookups(t *testing.T) {
	out := runShell(t, "help\n")

	assert.Contains(t, out, "  ticket <ticket_id>\n")
	assert.Contains(t, out, "  find <license_plate>\n")
}
