package ai

import (
	"context"
	"sync"
)

// Result is the outcome of one submitted generation.
type Result struct {
	ID         uint64
	Candidates []Candidate
	Err        error
}

// Dialog tracks the generation the prompt dialog is waiting on. Dismissing
// the dialog, or submitting again, cancels the in-flight call and makes its
// result undeliverable.
type Dialog struct {
	svc *Service

	mu      sync.Mutex
	current uint64
	next    uint64
	cancel  context.CancelFunc
}

func NewDialog(svc *Service) *Dialog {
	return &Dialog{svc: svc}
}

// Pending is a submitted generation.
type Pending struct {
	ID     uint64
	dialog *Dialog
	done   chan Result
}

// Submit starts req in the background and supersedes any earlier call.
func (d *Dialog) Submit(ctx context.Context, req Request) *Pending {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.next++
	id := d.next
	d.current = id
	callCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.mu.Unlock()

	p := &Pending{ID: id, dialog: d, done: make(chan Result, 1)}
	go func() {
		defer cancel()
		cands, err := d.svc.Generate(callCtx, req)
		p.done <- Result{ID: id, Candidates: cands, Err: err}
	}()
	return p
}

// Wait blocks for the result. It reports false when the dialog was dismissed
// or resubmitted in the meantime; the result must then be discarded.
func (p *Pending) Wait() (Result, bool) {
	res := <-p.done
	return res, p.dialog.Accepts(p.ID)
}

// Accepts reports whether a result for id may still be shown.
func (d *Dialog) Accepts(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return id != 0 && id == d.current
}

// Dismiss cancels the in-flight call, if any.
func (d *Dialog) Dismiss() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.current = 0
}

// Complete marks id as consumed so a late duplicate cannot be shown twice.
func (d *Dialog) Complete(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == id {
		d.current = 0
		d.cancel = nil
	}
}
