// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"takeaway/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CartRepoFactory provides access to the cart repository within a
	// transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// AddressRepoFactory provides access to the address repository within a
	// transaction.
	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	// OrderUoW manages transactions for order-only operations: every state
	// transition command uses this shape.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SubmitUoW manages the submission transaction, which spans the order,
	// the shopping cart being snapshotted and cleared, and the address book
	// entry being resolved.
	SubmitUoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
		AddressRepoFactory
	}

	// SubmitUoWFactory creates new submission unit of work instances.
	SubmitUoWFactory interface {
		Create() SubmitUoW
	}
)
