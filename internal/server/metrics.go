package server

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"parking-garage/internal/parking"
)

// availabilityCollector reports lot state at scrape time.
type availabilityCollector struct {
	handler *Handler

	availableSpots *prometheus.Desc
	totalSpots     *prometheus.Desc
	activeTickets  *prometheus.Desc
}

func newAvailabilityCollector(handler *Handler) *availabilityCollector {
	return &availabilityCollector{
		handler: handler,
		availableSpots: prometheus.NewDesc(
			"parking_garage_available_spots",
			"Free spots per floor and spot kind.",
			[]string{"floor", "kind"}, nil,
		),
		totalSpots: prometheus.NewDesc(
			"parking_garage_spots",
			"Total spots in the garage.",
			nil, nil,
		),
		activeTickets: prometheus.NewDesc(
			"parking_garage_active_tickets",
			"Tickets issued and not yet redeemed.",
			nil, nil,
		),
	}
}

func (c *availabilityCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.availableSpots
	ch <- c.totalSpots
	ch <- c.activeTickets
}

func (c *availabilityCollector) Collect(ch chan<- prometheus.Metric) {
	c.handler.mu.Lock()
	defer c.handler.mu.Unlock()

	lot := c.handler.parkingLot
	for _, floor := range lot.Floors() {
		free := map[parking.SpotKind]int{
			parking.Compact: 0,
			parking.Large:   0,
		}
		for _, spot := range floor.AvailableSpots() {
			free[spot.Kind]++
		}
		for kind, count := range free {
			ch <- prometheus.MustNewConstMetric(c.availableSpots, prometheus.GaugeValue,
				float64(count), strconv.Itoa(floor.Number), string(kind))
		}
	}

	ch <- prometheus.MustNewConstMetric(c.totalSpots, prometheus.GaugeValue, float64(lot.Capacity()))
	ch <- prometheus.MustNewConstMetric(c.activeTickets, prometheus.GaugeValue, float64(lot.OccupiedCount()))
}

func newRegistry(handler *Handler) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		newAvailabilityCollector(handler),
	)
	return registry
}
