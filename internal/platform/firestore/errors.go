package firestore

import (
	"errors"

	"github.com/phrazzld/task-manager-api/internal/store"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// entityTask names the entity in every StoreError raised by this package.
const entityTask = "task"

// errInvalidDocumentID is returned internally when an identifier cannot name a
// document in the collection (empty, or containing a path separator).
var errInvalidDocumentID = errors.New("invalid document ID")

// IsNotFound reports whether err is a Firestore NotFound status.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// MapError wraps a Firestore client error in a store.StoreError so callers can
// match it with store.ErrStorage while keeping the gRPC status as the cause.
func MapError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	return store.NewStoreError(entityTask, operation, message, err)
}
