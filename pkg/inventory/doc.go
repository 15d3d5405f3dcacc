// Package inventory holds the vending machine's product slots: each product
// carries a fixed price, a mutable stock count, and a capacity used as the
// fill level for bulk restocking.
//
// The package is a leaf: it performs no payment logic and owns no machine
// state. The controller verifies availability and sufficient balance before
// calling Decrement; Decrement itself only enforces the stock invariant
// (stock never goes negative).
//
// # Usage
//
//	inv := inventory.MustNew(
//	    inventory.Product{ID: "cola", Name: "Cola", Price: 1000, Stock: 10},
//	)
//	if inv.IsAvailable("cola") {
//	    if err := inv.Decrement("cola"); err != nil {
//	        // out of stock raced away
//	    }
//	}
//
// Inventories can also be loaded from a YAML catalog document, which is how
// deployments seed the machine:
//
//	inv, err := inventory.LoadCatalog("catalog.yaml")
//
// # Errors
//
// Typed errors (UnknownProductError, OutOfStockError, DuplicateProductError)
// come with Is* predicates; catalog failures are wrapped with
// ErrInvalidCatalog using errors.Join so callers can unwrap the cause.
package inventory
