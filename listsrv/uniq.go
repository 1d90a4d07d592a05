package listsrv

import (
	"math/rand/v2"
	"sync"

	"github.com/taylorza/go-lfsr"
)

// newSessionIDs returns a func which generates unique IDs in the range (0,2^31).
// They are safe for use in JavaScript.
func newSessionIDs() func() int {
	var lock sync.Mutex
	gen := lfsr.NewLfsr32(rand.Uint32() | 1) // zero seed never advances

	return func() int {
		lock.Lock()
		defer lock.Unlock()

		for {
			id, restarted := gen.Next()
			if restarted {
				panic("generated ~32 bits of session IDs")
			}
			if id == 0 || id&0x80000000 == 0x80000000 {
				continue // don't allow zero or anything with top bit
			}
			return int(id)
		}
	}
}
