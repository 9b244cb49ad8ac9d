// Package repokit holds the types service repos are written against
package repokit

import "scribe/internal/platform/store"

type (
	// Queryer is the sql surface a bound repo runs on, a pool or a tx
	Queryer    = store.RowQuerier
	TxRunner   = store.TxRunner
	Row        = store.Row
	Rows       = store.Rows
	CommandTag = store.CommandTag
)

// Binder binds a repo implementation to a Queryer. Services bind once
// to the pool and again per transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }
