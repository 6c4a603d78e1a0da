// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package gtexdge

import (
	"sync"
	"sync/atomic"
)

// throttle runs at most Max functions at a time and remembers the
// first error any of them returned.
type throttle struct {
	Max       int
	wg        sync.WaitGroup
	ch        chan bool
	err       atomic.Value
	setupOnce sync.Once
	errorOnce sync.Once
}

// Go waits for a free slot, then runs fn in a new goroutine. Once an
// error has been reported, fn is skipped.
func (t *throttle) Go(fn func() error) {
	t.setupOnce.Do(func() { t.ch = make(chan bool, t.Max) })
	t.wg.Add(1)
	t.ch <- true
	go func() {
		defer func() {
			<-t.ch
			t.wg.Done()
		}()
		if t.Err() != nil {
			return
		}
		t.report(fn())
	}()
}

func (t *throttle) report(err error) {
	if err != nil {
		t.errorOnce.Do(func() { t.err.Store(err) })
	}
}

func (t *throttle) Err() error {
	err, _ := t.err.Load().(error)
	return err
}

// Wait returns after all functions started by Go have finished.
func (t *throttle) Wait() error {
	t.wg.Wait()
	return t.Err()
}
