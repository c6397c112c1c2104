package orders

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// newOrderNumber builds a candidate "OS-<millis>-<hex>" number. The random
// suffix keeps two same-millisecond requests apart; Create still verifies
// uniqueness inside the transaction before committing.
func newOrderNumber() string {
	return fmt.Sprintf("OS-%d-%s", time.Now().UnixMilli(), randomHex(2))
}

func randomHex(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}
