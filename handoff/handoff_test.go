/*
 * handoff_test.go, part of govsepr.
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

package handoff

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestWins(t *testing.T) {
	S := New(false, nil)
	_, ok := S.Load()
	assert.False(t, ok)
	for _, in := range []string{"H2O", "CO2", "propane"} {
		_, err := S.Publish(context.Background(), Snapshot{Input: in})
		require.NoError(t, err)
	}
	got := <-S.Updates()
	assert.Equal(t, "propane", got.Input)
	assert.Equal(t, uint64(3), got.Seq)
	assert.NotEqual(t, uuid.Nil, got.ID)
	select {
	case extra := <-S.Updates():
		t.Fatalf("only one snapshot should be waiting, got %v", extra.Seq)
	default:
	}
	last, ok := S.Load()
	require.True(t, ok)
	assert.Equal(t, got.ID, last.ID)
}

func TestBackpressure(t *testing.T) {
	S := New(true, nil)
	_, err := S.Publish(context.Background(), Snapshot{Input: "first"})
	require.NoError(t, err, "the slot should start ready")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = S.Publish(ctx, Snapshot{Input: "second"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	<-S.Updates()
	S.Ready()
	S.Ready() //extra signals are dropped
	snap, err := S.Publish(context.Background(), Snapshot{Input: "third"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.Seq)

	blocked := make(chan error, 1)
	go func() {
		_, err := S.Publish(context.Background(), Snapshot{Input: "fourth"})
		blocked <- err
	}()
	select {
	case <-blocked:
		t.Fatal("publish should wait for Ready")
	case <-time.After(30 * time.Millisecond):
	}
	S.Ready()
	select {
	case err := <-blocked:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publish did not resume after Ready")
	}
}

func TestMonotonicConsumer(t *testing.T) {
	S := New(false, nil)
	const n = 200
	var wg sync.WaitGroup
	wg.Add(1)
	var seen []uint64
	go func() {
		defer wg.Done()
		for snap := range S.Updates() {
			seen = append(seen, snap.Seq)
			S.Ready()
		}
	}()
	for i := 0; i < n; i++ {
		_, err := S.Publish(context.Background(), Snapshot{Input: "x"})
		require.NoError(t, err)
	}
	S.Close()
	wg.Wait()
	require.NotEmpty(t, seen)
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1])
	}
	assert.Equal(t, uint64(n), seen[len(seen)-1])
	_, err := S.Publish(context.Background(), Snapshot{})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCloseReleasesProducer(t *testing.T) {
	S := New(true, nil)
	_, err := S.Publish(context.Background(), Snapshot{})
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() {
		_, err := S.Publish(context.Background(), Snapshot{})
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	S.Close()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("Close should release a waiting producer")
	}
}

func TestPublishAfterClose(t *testing.T) {
	for _, bp := range []bool{true, false} {
		S := New(bp, nil)
		S.Close()
		for i := 0; i < 3; i++ {
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			_, err := S.Publish(ctx, Snapshot{Input: "late"})
			cancel()
			assert.ErrorIs(t, err, ErrClosed, "backpressure %v, publish %d", bp, i)
		}
	}

	S := New(true, nil)
	_, err := S.Publish(context.Background(), Snapshot{})
	require.NoError(t, err)
	const waiting = 3
	done := make(chan error, waiting)
	for i := 0; i < waiting; i++ {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_, err := S.Publish(ctx, Snapshot{})
			done <- err
		}()
	}
	time.Sleep(10 * time.Millisecond)
	S.Close()
	for i := 0; i < waiting; i++ {
		assert.ErrorIs(t, <-done, ErrClosed)
	}
}

type counter struct {
	published, replaced int
}

func (c *counter) ObservePublish(replaced bool) {
	c.published++
	if replaced {
		c.replaced++
	}
}

func TestObserver(t *testing.T) {
	c := &counter{}
	S := New(false, nil, WithObserver(c))
	for i := 0; i < 3; i++ {
		_, err := S.Publish(context.Background(), Snapshot{})
		require.NoError(t, err)
	}
	<-S.Updates()
	_, err := S.Publish(context.Background(), Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, 4, c.published)
	assert.Equal(t, 2, c.replaced)
}
