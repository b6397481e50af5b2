package kiosk

import (
	"context"
	"log"
	"sync"
	"time"

	"pos-kiosk-demo/internal/poller"
)

// Registrar announces a session and its amount to the handoff server.
type Registrar interface {
	Register(ctx context.Context, sessionID, amount string) error
}

// Orchestrator serializes events from any goroutine through one reducer and
// publishes the resulting state to subscribers. Once a scanned session gets
// back to Home it is replaced with a new one, so every customer gets their
// own handoff.
type Orchestrator struct {
	machine   *Machine
	poller    *poller.Poller
	registrar Registrar
	newID     func() string

	events chan Event
	done   chan struct{}

	mu    sync.Mutex
	state State
	subs  []chan State
}

// NewOrchestrator creates an orchestrator starting from initial. poller and
// registrar may be nil, in which case the kiosk runs without a server.
func NewOrchestrator(machine *Machine, initial State, p *poller.Poller, registrar Registrar) *Orchestrator {
	return &Orchestrator{
		machine:   machine,
		poller:    p,
		registrar: registrar,
		newID:     NewSessionID,
		events:    make(chan Event, 64),
		done:      make(chan struct{}),
		state:     machine.Apply(initial, nil),
	}
}

// Dispatch queues ev. It reports false once Run has returned.
func (o *Orchestrator) Dispatch(ev Event) bool {
	select {
	case <-o.done:
		return false
	default:
	}
	select {
	case o.events <- ev:
		return true
	case <-o.done:
		return false
	}
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Props returns the props of the current screen.
func (o *Orchestrator) Props() Props {
	return o.machine.PropsFor(o.Snapshot())
}

// Subscribe returns a channel carrying the state after every change. The
// current state is delivered first. Slow readers only see the latest state.
// The channel is closed when Run returns.
func (o *Orchestrator) Subscribe() <-chan State {
	ch := make(chan State, 1)
	o.mu.Lock()
	defer o.mu.Unlock()
	ch <- o.state
	select {
	case <-o.done:
		close(ch)
	default:
		o.subs = append(o.subs, ch)
	}
	return ch
}

// Run reduces events until ctx is cancelled. Status changes for the current
// session are turned into Scanned, AppReady and HandoffComplete events. Run
// must be called once.
func (o *Orchestrator) Run(ctx context.Context) error {
	defer o.shutdown()

	var (
		flags     <-chan poller.Flags
		seen      poller.Flags
		watching  string
		stopWatch = func() {}
	)
	defer func() { stopWatch() }()

	// watch follows the current session, restarting when it changes.
	watch := func() {
		id := o.Snapshot().SessionID
		if o.poller == nil || id == watching {
			return
		}
		stopWatch()
		wctx, cancel := context.WithCancel(ctx)
		stopWatch = cancel
		flags = o.poller.Watch(wctx, id)
		seen = poller.Flags{}
		watching = id
	}
	watch()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-o.events:
			o.apply(ctx, ev)
		case f, ok := <-flags:
			if !ok {
				flags = nil
				continue
			}
			for _, ev := range flagEvents(seen, f) {
				o.apply(ctx, ev)
			}
			seen = f
		}
		watch()
	}
}

func flagEvents(seen, f poller.Flags) []Event {
	var evs []Event
	if f.Scanned && !seen.Scanned {
		evs = append(evs, Scanned{})
	}
	if f.AppReady && !seen.AppReady {
		evs = append(evs, AppReady{})
	}
	if f.HandoffComplete && !seen.HandoffComplete {
		evs = append(evs, HandoffComplete{})
	}
	return evs
}

func (o *Orchestrator) apply(ctx context.Context, ev Event) {
	o.mu.Lock()
	prev := o.state
	next := o.machine.Apply(prev, ev)
	if next.Screen == ScreenHome && next.Scanned {
		next = o.machine.Apply(next, NewSession{ID: o.newID()})
		log.Printf("session %s handed off; next customer gets %s", prev.SessionID, next.SessionID)
	}
	o.state = next
	for _, ch := range o.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
	o.mu.Unlock()

	if next.Screen == ScreenReward && prev.Screen != ScreenReward {
		o.register(ctx, next)
	}
}

func (o *Orchestrator) register(ctx context.Context, s State) {
	if o.registrar == nil {
		return
	}
	amount := s.Total()
	if amount == "" {
		amount = "0.00"
	}
	go func() {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := o.registrar.Register(ctx, s.SessionID, amount); err != nil {
			log.Printf("register session %s: %v", s.SessionID, err)
		}
	}()
}

func (o *Orchestrator) shutdown() {
	o.mu.Lock()
	defer o.mu.Unlock()
	close(o.done)
	for _, ch := range o.subs {
		close(ch)
	}
	o.subs = nil
}
