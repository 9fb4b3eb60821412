package errors

// MongoDB-specific helpers for mapping driver errors to project ErrorCode

import (
	"context"
	stderrs "errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoErrorCode maps a driver error to an ErrorCode
func MongoErrorCode(err error) ErrorCode {
	switch {
	case err == nil:
		return ErrorCodeUnknown
	case stderrs.Is(err, mongo.ErrNoDocuments):
		return ErrorCodeNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrorCodeDuplicateKey
	case stderrs.Is(err, context.Canceled):
		// the caller went away; nothing useful to classify
		return ErrorCodeUnknown
	default:
		// timeouts and lost connections land here too
		return ErrorCodeDB
	}
}

// FromMongo wraps a driver error with a mapped ErrorCode and client-safe message.
// If err is nil, returns nil
func FromMongo(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, MongoErrorCode(err), msg)
}
