package parking

import (
	"errors"
	"fmt"
	"strings"
)

type VehicleKind string

const (
	Car   VehicleKind = "CAR"
	Bike  VehicleKind = "BIKE"
	Truck VehicleKind = "TRUCK"
)

var ErrInvalidVehicleKind = errors.New("invalid vehicle kind")

func ParseVehicleKind(s string) (VehicleKind, error) {
	switch kind := VehicleKind(strings.ToUpper(strings.TrimSpace(s))); kind {
	case Car, Bike, Truck:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidVehicleKind, s)
	}
}

type Vehicle struct {
	LicensePlate string
	Kind         VehicleKind
}

func NewVehicle(licensePlate string, kind VehicleKind) *Vehicle {
	return &Vehicle{
		LicensePlate: licensePlate,
		Kind:         kind,
	}
}
