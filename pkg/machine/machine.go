package machine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/vendingkit/pkg/inventory"
	"github.com/dmitrymomot/vendingkit/pkg/translog"
)

// Machine is the transactional vending machine controller. It owns the
// current state, the accumulated balance, the current selection, and the
// transaction log; all inventory mutations happen through it.
//
// Every command serializes behind a single mutex, so at most one command is
// in flight per machine and the transient dispensing section is atomic with
// respect to external observers.
type Machine struct {
	mu        sync.Mutex
	state     State
	balance   int64
	selection string

	inv      *inventory.Inventory
	recorder *translog.Recorder
	logger   *slog.Logger
}

// Selection confirms a validated product choice.
type Selection struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Balance   int64  `json:"balance"`
}

// Receipt reports a completed dispense. ChangeReturned is an accounting
// value only; releasing physical currency is the caller's concern.
type Receipt struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Price          int64  `json:"price"`
	ChangeReturned int64  `json:"change_returned"`
}

// Status is a read-only view of the machine.
type Status struct {
	State     State               `json:"state"`
	Balance   int64               `json:"balance"`
	Selection string              `json:"selection,omitempty"`
	Inventory []inventory.Product `json:"inventory"`
}

// New creates a machine controller in StateReady over the given inventory.
func New(inv *inventory.Inventory, opts ...Option) *Machine {
	if inv == nil {
		panic("machine: inventory cannot be nil")
	}

	m := &Machine{
		state: StateReady,
		inv:   inv,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = newNoopLogger()
	}
	return m
}

// guard validates the command against the permission table. It must be
// called with the mutex held.
func (m *Machine) guard(cmd Command) error {
	if m.state == StateDispensing {
		return NewBusyError(cmd)
	}
	if _, ok := permitted[m.state][cmd]; !ok {
		return NewInvalidCommandError(m.state, cmd)
	}
	return nil
}

// snapshot captures everything a command may mutate, so a failed log append
// can restore the pre-command state. restockID names a product whose
// decrement must be undone on rollback.
type snapshot struct {
	state     State
	balance   int64
	selection string
	restockID string
}

func (m *Machine) take() snapshot {
	return snapshot{state: m.state, balance: m.balance, selection: m.selection}
}

// commit appends the log entry for an accepted command. On append failure it
// restores the snapshot and reports the fatal ErrTransactionLog class; no
// partial effects remain.
func (m *Machine) commit(ctx context.Context, cmd Command, detail string, snap snapshot) error {
	if m.recorder == nil {
		return nil
	}
	if err := m.recorder.Record(ctx, cmd.String(), m.state.String(), detail); err != nil {
		m.state = snap.state
		m.balance = snap.balance
		m.selection = snap.selection
		if snap.restockID != "" {
			m.inv.Restock(snap.restockID, 1)
		}
		return errors.Join(ErrTransactionLog, err)
	}
	return nil
}

// InsertCoin adds a positive amount to the balance and returns the new
// balance. From StateReady the machine moves to StateCoinInserted; from
// StateCoinInserted and StateProductSelected it stays put.
func (m *Machine) InsertCoin(ctx context.Context, amount int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(CommandInsertCoin); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, ErrNonPositiveAmount
	}

	snap := m.take()
	m.balance += amount
	if m.state == StateReady {
		m.state = StateCoinInserted
	}

	if err := m.commit(ctx, CommandInsertCoin, fmt.Sprintf("amount=%d balance=%d", amount, m.balance), snap); err != nil {
		return 0, err
	}

	m.logger.DebugContext(ctx, "coin inserted",
		slog.Int64("amount", amount),
		slog.Int64("balance", m.balance),
		slog.String("state", m.state.String()))
	return m.balance, nil
}

// SelectProduct validates the product against the current balance and marks
// it as the pending selection. Re-selecting while in StateProductSelected
// re-runs the full validation against the new product.
func (m *Machine) SelectProduct(ctx context.Context, id string) (Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(CommandSelectProduct); err != nil {
		return Selection{}, err
	}

	p, ok := m.inv.Get(id)
	if !ok {
		return Selection{}, inventory.NewUnknownProductError(id)
	}
	if p.Stock == 0 {
		return Selection{}, inventory.NewOutOfStockError(id)
	}
	if m.balance < p.Price {
		return Selection{}, NewInsufficientFundsError(id, p.Price, m.balance)
	}

	snap := m.take()
	m.selection = id
	m.state = StateProductSelected

	if err := m.commit(ctx, CommandSelectProduct, fmt.Sprintf("product=%s price=%d balance=%d", id, p.Price, m.balance), snap); err != nil {
		return Selection{}, err
	}

	m.logger.DebugContext(ctx, "product selected",
		slog.String("product", id),
		slog.Int64("price", p.Price),
		slog.Int64("balance", m.balance))
	return Selection{ProductID: id, Name: p.Name, Price: p.Price, Balance: m.balance}, nil
}

// Dispense releases the selected product, computes change and returns to
// StateReady. The sequence runs synchronously inside the transient
// StateDispensing: availability is re-checked, the stock is decremented
// exactly once, and the balance is consumed. If the product ran out since
// selection, the machine falls back to StateProductSelected with the balance
// intact so the caller can refund or pick another product.
func (m *Machine) Dispense(ctx context.Context) (Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(CommandDispense); err != nil {
		return Receipt{}, err
	}

	snap := m.take()
	m.state = StateDispensing

	if !m.inv.IsAvailable(m.selection) {
		m.state = StateProductSelected
		return Receipt{}, inventory.NewOutOfStockError(m.selection)
	}

	p, _ := m.inv.Get(m.selection)
	if err := m.inv.Decrement(m.selection); err != nil {
		m.state = StateProductSelected
		return Receipt{}, err
	}

	snap.restockID = p.ID
	change := m.balance - p.Price
	m.balance = 0
	m.selection = ""
	m.state = StateReady

	if err := m.commit(ctx, CommandDispense, fmt.Sprintf("product=%s price=%d change=%d", p.ID, p.Price, change), snap); err != nil {
		return Receipt{}, err
	}

	m.logger.InfoContext(ctx, "product dispensed",
		slog.String("product", p.ID),
		slog.Int64("price", p.Price),
		slog.Int64("change", change))
	return Receipt{ProductID: p.ID, ProductName: p.Name, Price: p.Price, ChangeReturned: change}, nil
}

// Refund returns the outstanding balance as change, clears the selection and
// moves to StateReady. In StateReady it is a no-op returning zero.
func (m *Machine) Refund(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(CommandRefund); err != nil {
		return 0, err
	}

	snap := m.take()
	refunded := m.balance
	m.balance = 0
	m.selection = ""
	m.state = StateReady

	if err := m.commit(ctx, CommandRefund, fmt.Sprintf("amount=%d", refunded), snap); err != nil {
		return 0, err
	}

	m.logger.InfoContext(ctx, "balance refunded", slog.Int64("amount", refunded))
	return refunded, nil
}

// Restock tops every product up to its capacity. Permitted only with zero
// outstanding balance: from StateReady, StateMaintenance, or StateOutOfOrder
// (the re-enable path). The machine passes through StateMaintenance and ends
// in StateReady.
func (m *Machine) Restock(ctx context.Context) error {
	return m.restock(ctx, func() { m.inv.RestockAll() }, "all")
}

// RestockProducts adds the given quantities to specific products instead of
// a full top-up. Unknown ids are ignored. Same state rules as Restock.
func (m *Machine) RestockProducts(ctx context.Context, quantities map[string]int) error {
	return m.restock(ctx, func() { m.inv.RestockMany(quantities) }, fmt.Sprintf("products=%d", len(quantities)))
}

func (m *Machine) restock(ctx context.Context, fill func(), detail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(CommandRestock); err != nil {
		return err
	}
	// Restocking mid-transaction would break money conservation.
	if m.balance > 0 {
		return NewInvalidCommandError(m.state, CommandRestock)
	}

	snap := m.take()
	// The pass through StateMaintenance is unobservable under the command
	// mutex; the machine lands back in StateReady.
	m.state = StateReady

	// The log entry is committed before filling: a bulk fill cannot be
	// undone, so ordering it after the only fallible step keeps a failed
	// append free of partial effects.
	if err := m.commit(ctx, CommandRestock, detail, snap); err != nil {
		return err
	}
	fill()

	m.logger.InfoContext(ctx, "inventory restocked", slog.String("scope", detail))
	return nil
}

// Shutdown takes the machine out of order. Permitted from StateReady and
// StateMaintenance; in StateOutOfOrder it is a no-op.
func (m *Machine) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(CommandShutdown); err != nil {
		return err
	}

	snap := m.take()
	m.state = StateOutOfOrder

	if err := m.commit(ctx, CommandShutdown, "", snap); err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "machine shut down")
	return nil
}

// Status returns a read-only view of the machine including an inventory
// snapshot.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Status{
		State:     m.state,
		Balance:   m.balance,
		Selection: m.selection,
		Inventory: m.inv.Snapshot(),
	}
}

// RecentTransactions returns the last n transaction log entries, newest
// last. Without a configured transaction log it returns nothing.
func (m *Machine) RecentTransactions(ctx context.Context, n int) ([]translog.Entry, error) {
	if m.recorder == nil {
		return nil, nil
	}
	return m.recorder.Recent(ctx, n)
}

// Allowed reports whether the command would pass the permission table in the
// current state, without executing anything.
func (m *Machine) Allowed(cmd Command) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.guard(cmd) == nil
}
