package utils

import (
	"time"

	"github.com/rampart-io/rampart"
	"github.com/rampart-io/rampart/errors"
)

// Logging is a decorator to log operations as they pass through
type Logging struct{}

var _ rampart.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (r Logging) Check(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx, next rampart.Checker) (*rampart.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, rampart.GetPath(tx), resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx rampart.Context, store rampart.KVStore, tx rampart.Tx, next rampart.Deliverer) (*rampart.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, rampart.GetPath(tx), resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx rampart.Context, start time.Time, path string, msg string, err error, lowPrio bool) {
	delta := time.Now().Sub(start)
	logger := rampart.GetLogger(ctx).With("path", path, "duration", delta/time.Microsecond)

	if err != nil {
		logger = logger.With("err", err, "code", errors.Code(err))
	}

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.

	if err != nil {
		logger.Error(msg)
	} else {
		if lowPrio {
			logger.Debug(msg)
		} else {
			logger.Info(msg)
		}
	}
}
