/*
 * handoff.go, part of govsepr.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package handoff passes finished structures from the goroutine that builds
// them to the one that displays them, one at a time. A new snapshot
// replaces any unread one, so the consumer always sees the latest result.
// With backpressure, the producer waits until the consumer says it is done
// with the previous snapshot.
package handoff

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	chem "github.com/rmera/govsepr"
	"github.com/rmera/govsepr/internal/logging"
)

// ErrClosed is returned when publishing to a closed slot.
var ErrClosed = errors.New("handoff: slot closed")

// Snapshot is one published result. Err is set, and Structure empty,
// for failed requests. The consumer must not modify Structure.
type Snapshot struct {
	ID        uuid.UUID
	Seq       uint64
	Input     string
	Structure chem.Structure
	Err       error
	Published time.Time
}

// Slot is a single-slot, optionally backpressured, hand-off.
type Slot struct {
	mu           sync.Mutex
	seq          uint64
	last         *Snapshot
	closed       bool
	updates      chan Snapshot
	ready        chan struct{}
	backpressure bool
	log          *zap.Logger
	obs          Observer
}

// Observer is told about every publication, and whether it replaced an unread snapshot.
type Observer interface {
	ObservePublish(replaced bool)
}

// Option configures a Slot.
type Option func(*Slot)

// WithObserver makes the slot report its publications to o.
func WithObserver(o Observer) Option {
	return func(S *Slot) { S.obs = o }
}

// New returns an empty slot. The slot starts ready, so the first publish never waits.
func New(backpressure bool, log *zap.Logger, opts ...Option) *Slot {
	S := &Slot{
		updates:      make(chan Snapshot, 1),
		ready:        make(chan struct{}, 1),
		backpressure: backpressure,
		log:          logging.OrNop(log),
	}
	for _, o := range opts {
		o(S)
	}
	S.ready <- struct{}{}
	return S
}

// Publish puts snap in the slot, replacing an unread snapshot if there is one.
// Snapshots get increasing sequence numbers, and a fresh ID if they have none.
// With backpressure, Publish first waits for Ready or for ctx to be done.
// It returns the snapshot as published.
func (S *Slot) Publish(ctx context.Context, snap Snapshot) (Snapshot, error) {
	if S.backpressure {
		if S.isClosed() {
			return Snapshot{}, ErrClosed
		}
		select {
		case <-S.ready:
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		}
	}
	S.mu.Lock()
	defer S.mu.Unlock()
	if S.closed {
		//pass the token on, so other waiting producers see the slot closed too.
		S.Ready()
		return Snapshot{}, ErrClosed
	}
	S.seq++
	snap.Seq = S.seq
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}
	snap.Published = time.Now()
	var replaced bool
	select {
	case old := <-S.updates:
		replaced = true
		S.log.Debug("replacing unread snapshot", zap.Uint64("seq", old.Seq), zap.Uint64("by", snap.Seq))
	default:
	}
	S.updates <- snap
	if S.obs != nil {
		S.obs.ObservePublish(replaced)
	}
	S.last = &snap
	S.log.Debug("published", zap.Uint64("seq", snap.Seq), zap.String("input", snap.Input), zap.Int("atoms", len(snap.Structure)))
	return snap, nil
}

func (S *Slot) isClosed() bool {
	S.mu.Lock()
	defer S.mu.Unlock()
	return S.closed
}

// Updates returns the channel the consumer reads snapshots from. It is
// closed by Close.
func (S *Slot) Updates() <-chan Snapshot {
	return S.updates
}

// Load returns the last published snapshot, whether or not it was read from Updates.
func (S *Slot) Load() (Snapshot, bool) {
	S.mu.Lock()
	defer S.mu.Unlock()
	if S.last == nil {
		return Snapshot{}, false
	}
	return *S.last, true
}

// Ready tells the producer that the consumer is done with the current
// snapshot. Extra calls are ignored.
func (S *Slot) Ready() {
	select {
	case S.ready <- struct{}{}:
	default:
	}
}

// Close closes the updates channel. An unread snapshot can still be received.
// Publishing afterwards returns ErrClosed.
func (S *Slot) Close() {
	S.mu.Lock()
	defer S.mu.Unlock()
	if S.closed {
		return
	}
	S.closed = true
	close(S.updates)
	S.Ready()
}
