package ledgerbook

import "errors"

var (
	ErrNotFound         = errors.New("ledger not found")
	ErrDuplicateName    = errors.New("ledger name already in use")
	ErrUnknownCurrency  = errors.New("unknown currency")
	ErrCurrencyMismatch = errors.New("ledger name does not match its currency")
	ErrReadOnlyCell     = errors.New("cell is read-only")
	ErrSignedAmount     = errors.New("amounts are stored unsigned, use the debit or credit column")
	ErrInvalidRate      = errors.New("exchange rate must be positive")
	ErrNotBank          = errors.New("not a bank ledger")
	ErrOutOfRange       = errors.New("cell out of range")
)
