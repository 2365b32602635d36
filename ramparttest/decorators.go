package ramparttest

import "github.com/rampart-io/rampart"

// Decorator is a mock implementation of the rampart.Decorator interface.
//
// Set CheckErr or DeliverErr to force an error response for the
// corresponding method. If the error attributes are not set then the wrapped
// handler method is called and its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ rampart.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx, next rampart.Checker) (*rampart.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx, next rampart.Deliverer) (*rampart.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps a handler with a single decorator and returns the pair as a
// plain handler.
func Decorate(h rampart.Handler, d rampart.Decorator) rampart.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn rampart.Handler
	dc rampart.Decorator
}

var _ rampart.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
