package iavl

import (
	"sync"

	"github.com/tendermint/iavl"

	"github.com/rampart-io/rampart/store"
)

// lazyIterator pulls items from the tree as they are requested, rather than
// materializing the whole range up front. The tree walk runs in its own
// goroutine and is aborted on Close.
type lazyIterator struct {
	current store.Model
	hasMore bool
	read    <-chan store.Model
	stop    chan<- struct{}
	once    sync.Once
}

var _ store.Iterator = (*lazyIterator)(nil)

func newLazyIterator(tree *iavl.ImmutableTree, start, end []byte, ascending bool) *lazyIterator {
	read := make(chan store.Model)
	// ensure we never block when we call Close()
	stop := make(chan struct{}, 1)
	it := &lazyIterator{
		read: read,
		stop: stop,
	}

	go func() {
		tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
			m := store.Model{Key: key, Value: value}
			select {
			case read <- m:
				// returning false means "don't stop", so the
				// walk continues with the next item
				return false
			case <-stop:
				return true
			}
		})
		close(read)
	}()

	it.next()
	return it
}

func (i *lazyIterator) next() {
	i.current, i.hasMore = <-i.read
}

// Valid implements Iterator and returns true iff it can be read
func (i *lazyIterator) Valid() bool {
	return i.hasMore
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *lazyIterator) Next() error {
	i.assertValid()
	i.next()
	return nil
}

func (i *lazyIterator) assertValid() {
	if !i.hasMore {
		panic("advanced past the end")
	}
}

// Key returns the key of the cursor.
func (i *lazyIterator) Key() []byte {
	i.assertValid()
	return i.current.Key
}

// Value returns the value of the cursor.
func (i *lazyIterator) Value() []byte {
	i.assertValid()
	return i.current.Value
}

// Close releases the Iterator and aborts the tree walk.
func (i *lazyIterator) Close() {
	i.once.Do(func() {
		i.stop <- struct{}{}
	})
}
