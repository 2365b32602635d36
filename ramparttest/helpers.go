package ramparttest

import "encoding/binary"

// SequenceID returns an ID encoded the same way the orm sequence counters
// encode their values. Use it in tests to reference entities by the order
// of their creation.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
