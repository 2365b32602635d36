package ramparttest

import "github.com/rampart-io/rampart"

// Handler is a mock implementation of the rampart.Handler interface.
//
// Set CheckResult, DeliverResult or the error attributes to program the
// responses. Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult rampart.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult rampart.DeliverResult
	DeliverErr    error
}

var _ rampart.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.CheckResult, error) {
	h.checkCall++
	// Return a copy so the caller cannot modify the template.
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx rampart.Context, db rampart.KVStore, tx rampart.Tx) (*rampart.DeliverResult, error) {
	h.deliverCall++
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
