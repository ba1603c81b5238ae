// internal/app/system/txn/txn.go

// Package txn wraps multi-document MongoDB transactions. Lifecycle
// operations that write several collections (member + first due +
// activity, payment + rollover + activity) run through WithTransaction
// so a failure partway leaves no partial state.
//
// Transactions require a replica set or sharded cluster. On a
// standalone server the driver reports the attempt as unsupported; in
// that case WithTransaction degrades to running the function without a
// transaction, which matches the original application's behavior.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Runner executes multi-collection write units against one client.
type Runner struct {
	client *mongo.Client
	log    *zap.Logger
}

// New creates a Runner. The logger may be nil.
func New(client *mongo.Client, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{client: client, log: log}
}

// WithTransaction runs fn inside a MongoDB transaction. The context
// passed to fn is session-bound; stores used inside fn join the
// transaction automatically. If the server does not support
// transactions, fn runs once without one.
func (r *Runner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			r.log.Debug("transactions unsupported; running without", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		r.log.Debug("transactions unsupported; running without", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Server error codes that indicate the deployment cannot run
// multi-document transactions.
const (
	codeIllegalOperation           = 20
	codeCommandNotSupported        = 51
	codeOperationNotSupportedInTxn = 263
)

// IsNotSupported reports whether err indicates that the connected
// MongoDB deployment does not support multi-document transactions
// (standalone server, old version, or an operation the transaction
// machinery rejects outright).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case codeIllegalOperation, codeCommandNotSupported, codeOperationNotSupportedInTxn:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") {
		if strings.Contains(msg, "replica set") ||
			strings.Contains(msg, "session") ||
			strings.Contains(msg, "illegal operation") {
			return true
		}
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
