package machine

// State identifies the controller's current mode. Exactly one state is active
// at any time.
type State string

const (
	// StateReady accepts coins; balance is always zero here.
	StateReady State = "ready"
	// StateCoinInserted holds a positive balance with no product chosen yet.
	StateCoinInserted State = "coin_inserted"
	// StateProductSelected holds a validated selection pending dispense.
	StateProductSelected State = "product_selected"
	// StateDispensing is the transient critical section of a dispense.
	StateDispensing State = "dispensing"
	// StateMaintenance is the restocking mode; entered with zero balance only.
	StateMaintenance State = "maintenance"
	// StateOutOfOrder refuses all trade until re-enabled via restock.
	StateOutOfOrder State = "out_of_order"
)

func (s State) String() string {
	return string(s)
}

// Command identifies an operation on the controller's command surface.
type Command string

const (
	CommandInsertCoin    Command = "insert_coin"
	CommandSelectProduct Command = "select_product"
	CommandDispense      Command = "dispense"
	CommandRefund        Command = "refund"
	CommandRestock       Command = "restock"
	CommandShutdown      Command = "shutdown"
)

func (c Command) String() string {
	return string(c)
}

// permitted is the transition-permission table: a nested map keyed by state
// and command for O(1) lookup. Any (state, command) pair absent from the
// table is rejected without side effects. StateDispensing has an empty row:
// every command arriving mid-dispense maps to BusyError instead.
var permitted = map[State]map[Command]struct{}{
	StateReady: {
		CommandInsertCoin: {},
		CommandRefund:     {},
		CommandRestock:    {},
		CommandShutdown:   {},
	},
	StateCoinInserted: {
		CommandInsertCoin:    {},
		CommandSelectProduct: {},
		CommandRefund:        {},
	},
	StateProductSelected: {
		CommandInsertCoin:    {},
		CommandSelectProduct: {},
		CommandDispense:      {},
		CommandRefund:        {},
	},
	StateDispensing: {},
	StateMaintenance: {
		CommandRestock:  {},
		CommandShutdown: {},
	},
	StateOutOfOrder: {
		CommandRestock:  {},
		CommandShutdown: {},
	},
}
