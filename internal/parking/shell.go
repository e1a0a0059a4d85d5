package parking

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Shell struct {
	parkingLot *InstrumentedParkingLot
	mu         sync.Locker
	scanner    *bufio.Scanner
	out        io.Writer
	telemetry  *TelemetryProvider
}

// NewShell holds mu while a command touches the lot; pass the same locker
// to anything else sharing parkingLot.
func NewShell(parkingLot *InstrumentedParkingLot, mu sync.Locker, telemetry *TelemetryProvider, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		parkingLot: parkingLot,
		mu:         mu,
		scanner:    bufio.NewScanner(in),
		out:        out,
		telemetry:  telemetry,
	}
}

// Run processes commands until input ends, "exit" is read or ctx is done.
func (s *Shell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	for ctx.Err() == nil && s.scanner.Scan() {
		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		s.mu.Lock()
		done := s.processCommand(cmdCtx, input)
		s.mu.Unlock()
		cmdSpan.End()

		if done {
			break
		}
	}

	span.AddEvent("shell_ended")
}

func (s *Shell) processCommand(ctx context.Context, input string) bool {
	span := trace.SpanFromContext(ctx)

	parts := strings.Fields(input)
	command := strings.ToLower(parts[0])
	span.SetAttributes(attribute.String("command.name", command))

	switch command {
	case "park":
		s.handlePark(ctx, parts)
	case "unpark":
		s.handleUnpark(ctx, parts)
	case "status":
		s.handleStatus(ctx)
	case "tickets":
		s.handleTickets(ctx)
	case "ticket":
		s.handleTicket(ctx, parts)
	case "find":
		s.handleFind(ctx, parts)
	case "help":
		s.printHelp()
	case "exit", "quit":
		return true
	default:
		span.AddEvent("unknown_command", trace.WithAttributes(
			attribute.String("unknown_command", command),
		))
		fmt.Fprintf(s.out, "Unknown command: %s\n", parts[0])
	}
	return false
}

func (s *Shell) handlePark(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.park_command")
	defer span.End()

	if len(parts) != 3 {
		span.AddEvent("invalid_arguments")
		fmt.Fprintln(s.out, "Usage: park <license_plate> <CAR|BIKE|TRUCK>")
		return
	}

	kind, err := ParseVehicleKind(parts[2])
	if err != nil {
		span.RecordError(err)
		fmt.Fprintf(s.out, "Invalid vehicle kind: %s\n", parts[2])
		return
	}

	ticket, err := s.parkingLot.Park(ctx, NewVehicle(parts[1], kind))
	if err != nil {
		span.AddEvent("parking_failed")
		fmt.Fprintln(s.out, "No available spot!")
		return
	}

	span.AddEvent("parking_successful", trace.WithAttributes(
		attribute.String("spot_id", ticket.SpotID),
	))
	fmt.Fprintf(s.out, "Vehicle parked at spot: %s\nTicket ID: %s\n", ticket.SpotID, ticket.ID)
}

func (s *Shell) handleUnpark(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.unpark_command")
	defer span.End()

	if len(parts) != 2 {
		span.AddEvent("invalid_arguments")
		fmt.Fprintln(s.out, "Usage: unpark <ticket_id>")
		return
	}

	fee, err := s.parkingLot.Unpark(ctx, parts[1])
	if errors.Is(err, ErrTicketNotFound) {
		span.AddEvent("ticket_not_found")
		fmt.Fprintf(s.out, "Ticket not found: %s\n", parts[1])
		return
	}

	span.AddEvent("unpark_successful")
	fmt.Fprintf(s.out, "Unparking vehicle. Fee: $%s\n", FormatFee(fee))
}

func (s *Shell) handleStatus(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.status_command")
	defer span.End()

	s.parkingLot.DisplayAllAvailableSpots(s.out)
}

func (s *Shell) handleTickets(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.tickets_command")
	defer span.End()

	tickets := s.parkingLot.ActiveTickets(ctx)
	if len(tickets) == 0 {
		span.AddEvent("no_active_tickets")
		fmt.Fprintln(s.out, "No active tickets")
		return
	}

	span.SetAttributes(attribute.Int("active_tickets_count", len(tickets)))

	fmt.Fprintln(s.out, "Ticket\tSpot\tLicense Plate\tKind")
	for _, ticket := range tickets {
		fmt.Fprintf(s.out, "%s\t%s\t%s\t%s\n", ticket.ID, ticket.SpotID, ticket.Vehicle.LicensePlate, ticket.Vehicle.Kind)
	}
}

func (s *Shell) handleTicket(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	_, span := tracer.Start(ctx, "shell.ticket_command")
	defer span.End()

	if len(parts) != 2 {
		span.AddEvent("invalid_arguments")
		fmt.Fprintln(s.out, "Usage: ticket <ticket_id>")
		return
	}

	span.SetAttributes(attribute.String("ticket.id", parts[1]))

	ticket, ok := s.parkingLot.Ticket(parts[1])
	if !ok {
		span.AddEvent("ticket_not_found")
		fmt.Fprintf(s.out, "Ticket not found: %s\n", parts[1])
		return
	}

	s.printTicket(ticket)
}

func (s *Shell) handleFind(ctx context.Context, parts []string) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.find_command")
	defer span.End()

	if len(parts) != 2 {
		span.AddEvent("invalid_arguments")
		fmt.Fprintln(s.out, "Usage: find <license_plate>")
		return
	}

	ticket, ok := s.parkingLot.FindTicketByLicensePlate(ctx, parts[1])
	if !ok {
		span.AddEvent("vehicle_not_found")
		fmt.Fprintln(s.out, "Not found")
		return
	}

	s.printTicket(ticket)
}

func (s *Shell) printTicket(ticket *Ticket) {
	fmt.Fprintf(s.out, "Ticket ID: %s\nSpot: %s\nLicense Plate: %s\nKind: %s\nEntry: %s\n",
		ticket.ID, ticket.SpotID, ticket.Vehicle.LicensePlate, ticket.Vehicle.Kind,
		ticket.EntryTime.Format(time.RFC3339))
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  park <license_plate> <CAR|BIKE|TRUCK>")
	fmt.Fprintln(s.out, "  unpark <ticket_id>")
	fmt.Fprintln(s.out, "  status")
	fmt.Fprintln(s.out, "  tickets")
	fmt.Fprintln(s.out, "  ticket <ticket_id>")
	fmt.Fprintln(s.out, "  find <license_plate>")
	fmt.Fprintln(s.out, "  exit")
}

func FormatFee(fee float64) string {
	return strconv.FormatFloat(fee, 'f', -1, 64)
}
