// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package events

import (
	"context"
	"sync/atomic"
)

type Type int

const (
	// All event type -> used by subscribers to just receive all events, has no actual corresponding event payload.
	All Type = iota
	// other event types that DO have corresponding event types.
	CollateralDepositedEvent
	CollateralRedeemedEvent
	DebtMintedEvent
	DebtBurnedEvent
	PositionLiquidatedEvent
)

var eventStrings = map[Type]string{
	All:                      "ALL",
	CollateralDepositedEvent: "CollateralDepositedEvent",
	CollateralRedeemedEvent:  "CollateralRedeemedEvent",
	DebtMintedEvent:          "DebtMintedEvent",
	DebtBurnedEvent:          "DebtBurnedEvent",
	PositionLiquidatedEvent:  "PositionLiquidatedEvent",
}

func (t Type) String() string {
	s, ok := eventStrings[t]
	if !ok {
		return "UNKNOWN EVENT"
	}
	return s
}

// Event - the base event interface type.
type Event interface {
	Type() Type
	Context() context.Context
	TraceID() string
	Sequence() uint64
	SetSequenceID(s uint64)
}

type traceIDKey int

const traceIDContextKey traceIDKey = 0

// WithTraceID stores a trace ID in the given context so events raised
// while processing it can be correlated by external indexers.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDContextKey, traceID)
}

// TraceIDFromContext returns the trace ID stored in the context, if any.
func TraceIDFromContext(ctx context.Context) string {
	tID := ctx.Value(traceIDContextKey)
	if tID == nil {
		return ""
	}
	stID, ok := tID.(string)
	if !ok {
		return ""
	}
	return stID
}

var eventSeq uint64

// Base common denominator all event-bus events share.
type Base struct {
	ctx     context.Context
	traceID string
	seq     uint64
	et      Type
}

func newBase(ctx context.Context, t Type) *Base {
	return &Base{
		ctx:     ctx,
		traceID: TraceIDFromContext(ctx),
		seq:     atomic.AddUint64(&eventSeq, 1),
		et:      t,
	}
}

// Type returns the event type.
func (b Base) Type() Type {
	return b.et
}

// Context returns the context the event was raised with.
func (b Base) Context() context.Context {
	return b.ctx
}

// TraceID returns the trace ID of the transaction that raised the event.
func (b Base) TraceID() string {
	return b.traceID
}

// Sequence returns the event sequence number.
func (b Base) Sequence() uint64 {
	return b.seq
}

// SetSequenceID overrides the automatically assigned sequence ID. The broker
// uses this to guarantee a gapless, per-batch ordering.
func (b *Base) SetSequenceID(s uint64) {
	b.seq = s
}
