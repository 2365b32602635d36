package registry

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/x/guard"
)

// CheckTransaction decides whether the wallet may execute a transaction
// with the given parameters. A nil return approves execution, a non nil
// error forbids it.
//
// The wallet platform MUST call this hook synchronously before every
// execution and MUST NOT execute when an error is returned. There is no
// default allow: an unknown payee, an unlisted contract or a disabled
// delegation policy all reject. The hook reads the latest committed
// state and writes nothing, so it is safe to call any number of times
// and identical parameters against an unchanged state always produce
// the same verdict.
//
// A rejection is one of the guard package policy errors wrapping the
// concrete cause.
func (r *Registry) CheckTransaction(ctx rampart.Context, wallet, destination rampart.Address, value, payload []byte, op rampart.Operation) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	db := r.store.ReadStore()
	defer db.Discard()

	t, err := guard.Validate(db, wallet, destination, value, payload, op)
	logger := r.logger.With(
		"wallet", wallet,
		"destination", destination,
		"type", t,
	)
	if err != nil {
		logger.Info("transaction rejected", "cause", err)
		return err
	}
	logger.Debug("transaction approved")
	return nil
}
