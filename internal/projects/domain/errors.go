package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidation = errors.New("Invalid data provided.")
	ErrCapacity   = errors.New("You can only feature a maximum of 3 projects. Please unfeature another project first.")
	ErrNotFound   = errors.New("Project not found.")
)

// StorageError reports a failure of the document store. Message is safe to show
// to the operator; Err keeps the underlying fault for logs and errors.Is.
type StorageError struct {
	Op      string
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

const credentialHint = "Failed to connect to the database: the service-account private key could not be decoded. " +
	"Check that FIREBASE_CREDENTIALS_PATH points to a valid service-account JSON file and that its private_key " +
	"field is intact (including the BEGIN/END PRIVATE KEY lines and \\n escapes)."

// credentialFaults are fragments of faults raised when the service-account key is malformed.
var credentialFaults = []string{
	"DECODER routines",
	"private key",
	"no pem data",
	"invalid_grant",
	"asn1: structure error",
	"could not find default credentials",
}

// NewStorageError wraps err for operation op, replacing the message with a
// remediation hint when the fault looks like a credential misconfiguration.
func NewStorageError(op string, err error) *StorageError {
	msg := err.Error()
	lower := strings.ToLower(msg)
	for _, f := range credentialFaults {
		if strings.Contains(lower, strings.ToLower(f)) {
			msg = credentialHint
			break
		}
	}
	return &StorageError{Op: op, Message: msg, Err: err}
}
