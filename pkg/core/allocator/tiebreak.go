package allocator

import (
	"encoding/binary"
	"hash/fnv"
)

// tieKey produces a deterministic secondary ordering key for a candidate
// pairing. Folding the run's seed into the hash lets two runs with
// different seeds break exact-confidence ties differently while each run
// stays bit-for-bit reproducible.
func tieKey(seed int64, playerID, sessionID string) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(seed))
	h.Write(buf[:])
	h.Write([]byte(playerID))
	h.Write([]byte{0})
	h.Write([]byte(sessionID))
	return h.Sum64()
}
