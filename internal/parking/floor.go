package parking

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

const SpotsPerFloor = 26

type Floor struct {
	Number int
	spots  []*Spot
}

// NewFloor lays out spots {n}A through {n}Z. Odd letters (A, C, ...) are
// LARGE, even letters are COMPACT.
func NewFloor(number int) *Floor {
	spots := make([]*Spot, 0, SpotsPerFloor)
	for c := 'A'; c <= 'Z'; c++ {
		kind := Large
		if c%2 == 0 {
			kind = Compact
		}
		spots = append(spots, NewSpot(strconv.Itoa(number)+string(c), kind))
	}

	return &Floor{
		Number: number,
		spots:  spots,
	}
}

func (f *Floor) Spots() []*Spot {
	return f.spots
}

func (f *Floor) FindAvailableSpot(kind VehicleKind) *Spot {
	for _, spot := range f.spots {
		if spot.IsAvailable() && spot.Fits(kind) {
			return spot
		}
	}
	return nil
}

func (f *Floor) AvailableSpots() []*Spot {
	var available []*Spot
	for _, spot := range f.spots {
		if spot.IsAvailable() {
			available = append(available, spot)
		}
	}
	return available
}

func (f *Floor) DisplayAvailableSpots(w io.Writer) {
	heading := lipgloss.NewRenderer(w).NewStyle().Bold(true)

	fmt.Fprintln(w, heading.Render(fmt.Sprintf("Floor %d available spots:", f.Number)))
	for _, spot := range f.AvailableSpots() {
		fmt.Fprintf(w, "%s (%s)\t", spot.ID, spot.Kind)
	}
	fmt.Fprint(w, "\n\n")
}
