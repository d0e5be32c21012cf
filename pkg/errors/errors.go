package errors

import (
	"errors"
)

// Messages are returned to clients verbatim in the {"error": ...} body.
var (
	ErrMissingCredential      = errors.New("Missing Authorization header")
	ErrInvalidAmount          = errors.New("Invalid amount")
	ErrInvalidCurrency        = errors.New("Invalid currency")
	ErrMissingTransactionData = errors.New("Missing required transaction data")
	ErrAuthFailure            = errors.New("User authentication failed")
	ErrMissingClientSecret    = errors.New("Missing client secret")
	ErrClientSecretMalformed  = errors.New("Invalid client secret")
	ErrTransactionNotFound    = errors.New("Transaction not found")
	ErrTransactionNotUpdated  = errors.New("Transaction not updated")
	ErrTransactionFinalized   = errors.New("Transaction already finalized")
	ErrVerificationInProgress = errors.New("Verification already in progress")
	ErrGateway                = errors.New("payment gateway error")
	ErrDatastore              = errors.New("datastore error")
	ErrMethodNotAllowed       = errors.New("Method not allowed")
	ErrRouteNotFound          = errors.New("Not found")
)
