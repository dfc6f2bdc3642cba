package payment

import "math/rand"

// Rand supplies the uniform random values used for transaction ids,
// settlement delays, outcome draws, and generated codes. Implementations
// must be safe for concurrent use; tests inject scripted sources.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) IntN(n int) int   { return rand.Intn(n) }

// SystemRand returns the process-wide random source.
func SystemRand() Rand { return systemRand{} }

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
const base36Lower = "0123456789abcdefghijklmnopqrstuvwxyz"

func randChars(r Rand, alphabet string, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[r.IntN(len(alphabet))]
	}
	return string(out)
}
