package machine

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveAmount is returned when InsertCoin is called with a zero
	// or negative amount.
	ErrNonPositiveAmount = errors.New("coin amount must be positive")

	// ErrTransactionLog wraps a failed transaction log append. This is the
	// controller's single fatal class: the in-flight command is rolled back
	// and callers should treat the machine as unserviceable.
	ErrTransactionLog = errors.New("transaction log append failed")
)

// InvalidCommandError indicates a command that is not permitted in the
// current state. The rejection is idempotent: state, balance, selection and
// inventory are left untouched.
type InvalidCommandError struct {
	State   State
	Command Command
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("command %q is not permitted in state %q", e.Command, e.State)
}

func NewInvalidCommandError(state State, command Command) *InvalidCommandError {
	return &InvalidCommandError{State: state, Command: command}
}

// BusyError indicates a command arrived while the machine was transiently
// dispensing. Callers should retry shortly. With the built-in mutex
// serialization this is not observable externally, but the type exists so a
// queued or concurrent deployment keeps the same taxonomy.
type BusyError struct {
	Command Command
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("machine is busy dispensing, retry command %q shortly", e.Command)
}

func NewBusyError(command Command) *BusyError {
	return &BusyError{Command: command}
}

// InsufficientFundsError indicates the balance does not cover the selected
// product's price. The message always includes the shortfall.
type InsufficientFundsError struct {
	ProductID string
	Price     int64
	Balance   int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for product %q: price %d, balance %d, short %d",
		e.ProductID, e.Price, e.Balance, e.Shortfall())
}

// Shortfall returns how much more money is needed for the product.
func (e *InsufficientFundsError) Shortfall() int64 {
	return e.Price - e.Balance
}

func NewInsufficientFundsError(productID string, price, balance int64) *InsufficientFundsError {
	return &InsufficientFundsError{ProductID: productID, Price: price, Balance: balance}
}

func IsInvalidCommandError(err error) bool {
	var e *InvalidCommandError
	return errors.As(err, &e)
}

func IsBusyError(err error) bool {
	var e *BusyError
	return errors.As(err, &e)
}

func IsInsufficientFundsError(err error) bool {
	var e *InsufficientFundsError
	return errors.As(err, &e)
}
