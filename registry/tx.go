package registry

import (
	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
)

// operationTx adapts a single message to the Tx interface the decorator
// stack expects. Operation transactions exist in memory only, they are
// never decoded from bytes.
type operationTx struct {
	msg rampart.Msg
}

var _ rampart.Tx = operationTx{}

func (tx operationTx) GetMsg() (rampart.Msg, error) {
	return tx.msg, nil
}

func (tx operationTx) Marshal() ([]byte, error) {
	return tx.msg.Marshal()
}

func (tx operationTx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "an operation transaction is never decoded")
}
