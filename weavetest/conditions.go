package weavetest

import (
	"encoding/binary"
	"sync/atomic"

	weave "github.com/iov-one/taxweave"
)

var condSeq uint64

// NewCondition returns a condition that is unique within the test binary.
func NewCondition() weave.Condition {
	var data [8]byte
	binary.BigEndian.PutUint64(data[:], atomic.AddUint64(&condSeq, 1))
	return weave.NewCondition("test", "seq", data[:])
}

// SequenceID returns a key of the given sequence value, encoded the same way
// as generated identifiers are.
func SequenceID(n uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	return b[:]
}
