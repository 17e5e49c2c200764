package executor

import (
	"errors"
	"fmt"
)

// RequestValidationError means the caller sent malformed input. It is never retried.
type RequestValidationError struct {
	Message string
}

func (e *RequestValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &RequestValidationError{Message: fmt.Sprintf(format, args...)}
}

type TransactionBuildingErrorCode string

const NotEnoughBalance TransactionBuildingErrorCode = "notEnoughBalance"

// TransactionBuildingError means the ledger state forbids building the transaction.
type TransactionBuildingError struct {
	Code    TransactionBuildingErrorCode
	Message string
}

func (e *TransactionBuildingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type TransactionBroadcastingErrorCode string

const RebuildRequired TransactionBroadcastingErrorCode = "rebuildRequired"

// TransactionBroadcastingError means the signed transaction can not be applied and must be rebuilt.
type TransactionBroadcastingError struct {
	Code    TransactionBroadcastingErrorCode
	Message string
}

func (e *TransactionBroadcastingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func IsRequestValidationError(err error) bool {
	var target *RequestValidationError
	return errors.As(err, &target)
}
