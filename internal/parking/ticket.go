package parking

import (
	"strconv"
	"time"
)

type Ticket struct {
	ID        string
	Vehicle   *Vehicle
	SpotID    string
	EntryTime time.Time

	seq uint64
}

func ticketID(seq uint64) string {
	return "T" + strconv.FormatUint(seq, 10)
}
