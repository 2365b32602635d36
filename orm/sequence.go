package orm

import (
	"encoding/binary"

	"github.com/rampart-io/rampart"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both NextInt() as well as bytes.Compare() on NextVal().
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s *Sequence) NextVal(db rampart.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, s.id, 1)
	return bz, err
}

// NextInt increments the sequence and returns its state as int.
func (s *Sequence) NextInt(db rampart.KVStore) (int64, error) {
	val, _, err := s.increment(db, s.id, 1)
	return val, err
}

// NextValFor increments an independent counter that this sequence maintains
// for the given key, and returns its state as 8 bytes. Each key owns its own
// monotonic series. The counter is never reset, even if all data stored
// under the related key is long gone.
func (s *Sequence) NextValFor(db rampart.KVStore, key []byte) ([]byte, error) {
	dbkey := make([]byte, 0, len(s.id)+1+len(key))
	dbkey = append(dbkey, s.id...)
	dbkey = append(dbkey, '.')
	dbkey = append(dbkey, key...)
	_, bz, err := s.increment(db, dbkey, 1)
	return bz, err
}

// Latest returns the recently returned value of the sequence. This method does
// not modify the sequence state. Use NextVal or NextInt to acquire a sequence
// value that was not given to anyone else.
func (s *Sequence) Latest(db rampart.KVStore) (int64, []byte, error) {
	return s.increment(db, s.id, 0)
}

func (s *Sequence) increment(db rampart.KVStore, dbkey []byte, inc int64) (int64, []byte, error) {
	raw, err := db.Get(dbkey)
	if err != nil {
		return 0, nil, err
	}
	val := DecodeSequence(raw)
	if inc == 0 {
		return val, raw, nil
	}
	val += inc
	raw = EncodeSequence(val)
	err = db.Set(dbkey, raw)
	return val, raw, err
}

func DecodeSequence(bz []byte) int64 {
	if bz == nil {
		return 0
	}
	val := binary.BigEndian.Uint64(bz)
	return int64(val)
}

func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}
