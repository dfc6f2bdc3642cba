package record

import (
	"fmt"
	"math/rand"
	"time"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewTicketID generates an id of the form TKT_<unix-ms>_<random>.
func NewTicketID(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("TKT_%d_%s", now.UnixMilli(), suffix)
}
