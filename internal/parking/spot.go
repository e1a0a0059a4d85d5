package parking

type SpotKind string

const (
	Compact     SpotKind = "COMPACT"
	Large       SpotKind = "LARGE"
	Handicapped SpotKind = "HANDICAPPED"
	Electric    SpotKind = "ELECTRIC"
)

type Spot struct {
	ID         string
	Kind       SpotKind
	IsOccupied bool
	Vehicle    *Vehicle
}

func NewSpot(id string, kind SpotKind) *Spot {
	return &Spot{
		ID:         id,
		Kind:       kind,
		IsOccupied: false,
		Vehicle:    nil,
	}
}

func (s *Spot) IsAvailable() bool {
	return !s.IsOccupied
}

// Fits reports whether a vehicle of the given kind may use this spot.
// Bikes fit anywhere; HANDICAPPED and ELECTRIC spots take no cars or trucks.
func (s *Spot) Fits(kind VehicleKind) bool {
	switch kind {
	case Bike:
		return true
	case Car:
		return s.Kind == Compact
	case Truck:
		return s.Kind == Large
	default:
		return false
	}
}

func (s *Spot) Park(vehicle *Vehicle) {
	s.Vehicle = vehicle
	s.IsOccupied = true
}

func (s *Spot) Leave() *Vehicle {
	vehicle := s.Vehicle
	s.Vehicle = nil
	s.IsOccupied = false
	return vehicle
}
