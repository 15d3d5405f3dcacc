// Package machine implements the transactional vending machine controller:
// an explicit finite state machine governing money intake, product selection,
// dispensing, refund, maintenance and shutdown.
//
// # States and commands
//
// The machine is always in exactly one of six states: ready, coin_inserted,
// product_selected, dispensing (transient), maintenance, out_of_order. A
// nested permission table maps each state to the commands it accepts; every
// other (state, command) pair is rejected with InvalidCommandError and leaves
// state, balance, selection and inventory untouched. Commands arriving while
// the machine transiently dispenses map to BusyError instead.
//
// # Invariants
//
//   - Money conservation: the balance equals the coins inserted since the
//     last return to ready, until a dispense consumes it or a refund returns
//     it; the balance is zero whenever the state is ready.
//   - No double-dispense: a successful Dispense decrements the product's
//     stock exactly once, inside the transient dispensing section.
//   - Restocking requires a zero outstanding balance.
//
// # Error taxonomy
//
// InvalidCommandError, BusyError and InsufficientFundsError are defined
// here; UnknownProductError and OutOfStockError are raised through the
// inventory package. All are recoverable and never corrupt balance or
// inventory. The single fatal class is a transaction log append failure,
// surfaced wrapped with ErrTransactionLog after the in-flight command has
// been rolled back to its pre-command state.
//
// # Usage
//
//	inv := inventory.MustNew(inventory.Product{ID: "cola", Name: "Cola", Price: 1000, Stock: 10})
//	m := machine.New(inv,
//	    machine.WithTransactionLog(translog.NewRecorder(translog.NewMemoryStorage())),
//	    machine.WithLogger(log),
//	)
//
//	balance, _ := m.InsertCoin(ctx, 500)
//	_, _ = m.InsertCoin(ctx, 500)
//	_, _ = m.SelectProduct(ctx, "cola")
//	receipt, err := m.Dispense(ctx)
//
// All commands are synchronous and serialize behind one mutex per machine;
// there is no cancellation concept, and timeout policy (for example an
// abandoned transaction) belongs to the caller as an issued Refund.
package machine
