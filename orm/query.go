package orm

import (
	"github.com/rampart-io/rampart"
)

// queryPrefix returns a window of all models stored under the given absolute
// key prefix. Offset entries are skipped, limit > 0 caps the result.
func queryPrefix(db rampart.ReadOnlyKVStore, prefix []byte, offset, limit int) ([]rampart.Model, error) {
	start, end := prefixRange(prefix)
	itr, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer itr.Close()

	for ; offset > 0 && itr.Valid(); offset-- {
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}

	var res []rampart.Model
	for itr.Valid() {
		// the iterator may reuse the returned buffers
		mod := rampart.Model{
			Key:   append([]byte(nil), itr.Key()...),
			Value: append([]byte(nil), itr.Value()...),
		}
		res = append(res, mod)
		if limit > 0 && len(res) == limit {
			break
		}
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixRange turns a prefix into a (start, end) range for an iterator over
// all keys starting with that prefix.
//
// In case the prefix is empty, the range covers the whole key space. If the
// prefix consists only of 0xff bytes, there is no finite end and nil is
// returned instead.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}

	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}
