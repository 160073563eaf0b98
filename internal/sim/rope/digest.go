package rope

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"ropesim/internal/sim/geom"
)

// Digest hashes a chain: segment count, then X and Y of each segment as
// big-endian int64.
func Digest(segs []geom.Pos) string {
	h := sha256.New()
	var tmp [8]byte

	binary.BigEndian.PutUint64(tmp[:], uint64(len(segs)))
	h.Write(tmp[:])
	for _, p := range segs {
		binary.BigEndian.PutUint64(tmp[:], uint64(int64(p.X)))
		h.Write(tmp[:])
		binary.BigEndian.PutUint64(tmp[:], uint64(int64(p.Y)))
		h.Write(tmp[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
