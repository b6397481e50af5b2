// Package ui is the terminal front-end of the kiosk.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pos-kiosk-demo/config"
	"pos-kiosk-demo/internal/kiosk"
)

// Kiosk is the event sink and state source the UI renders.
type Kiosk interface {
	Dispatch(ev kiosk.Event) bool
	Subscribe() <-chan kiosk.State
}

// DevClient plays the phone's part of the handoff from the dev panel.
type DevClient interface {
	SimulateScan(ctx context.Context, sessionID string) error
	AppReady(ctx context.Context, sessionID string) error
	HandoffComplete(ctx context.Context, sessionID string) error
}

// Timing holds the screen timers. A zero duration disables that timer.
type Timing struct {
	AuthDelay   time.Duration
	Idle        time.Duration
	Screensaver time.Duration
}

// TimingFromConfig derives the timers from the kiosk settings.
func TimingFromConfig(cfg config.KioskConfig) Timing {
	return Timing{
		AuthDelay:   2 * time.Second,
		Idle:        time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
		Screensaver: time.Duration(cfg.ScreensaverIntervalSeconds) * time.Second,
	}
}

// maxTipInput caps the custom tip field; "99999.99" fits.
const maxTipInput = 8

type stateMsg kiosk.State

type stateClosedMsg struct{}

// timerMsg carries the event a screen timer fires. seq ties it to the state
// that scheduled it; any later state change makes it stale.
type timerMsg struct {
	seq   int
	event kiosk.Event
}

type devResultMsg struct {
	action string
	err    error
}

// Model is the root Bubble Tea model.
type Model struct {
	kiosk   Kiosk
	machine *kiosk.Machine
	dev     DevClient
	timing  Timing
	sub     <-chan kiosk.State

	state kiosk.State
	props kiosk.Props
	ready bool
	seq   int

	tipInput    string
	panelCursor int
	info        string
	error       string

	width  int
	height int

	keys      KeyMap
	panelKeys PanelKeyMap
}

// New creates a new root model. dev may be nil.
func New(k Kiosk, machine *kiosk.Machine, dev DevClient, timing Timing) Model {
	return Model{
		kiosk:     k,
		machine:   machine,
		dev:       dev,
		timing:    timing,
		sub:       k.Subscribe(),
		keys:      DefaultKeyMap(),
		panelKeys: DefaultPanelKeyMap(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return waitForState(m.sub)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		prev := m.state.Screen
		m.state = kiosk.State(msg)
		m.props = m.machine.PropsFor(m.state)
		m.ready = true
		if m.state.Screen != prev {
			m.tipInput = ""
		}
		m.seq++
		return m, tea.Batch(waitForState(m.sub), m.timerCmd())

	case stateClosedMsg:
		return m, tea.Quit

	case timerMsg:
		if msg.seq == m.seq {
			m.kiosk.Dispatch(msg.event)
		}
		return m, nil

	case devResultMsg:
		if msg.err != nil {
			m.error = fmt.Sprintf("%s: %v", msg.action, msg.err)
			m.info = ""
		} else {
			m.info = msg.action + " sent"
			m.error = ""
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.state.PanelOpen {
			return m.handlePanelKey(msg)
		}
		if m.state.Screen == kiosk.ScreenCustomTip {
			if next, cmd, ok := m.handleTipInput(msg); ok {
				return next, cmd
			}
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.props
	switch {
	case key.Matches(msg, m.keys.Next):
		m.dispatch(p.Next)
	case key.Matches(msg, m.keys.Back):
		m.dispatch(p.Back)
	case key.Matches(msg, m.keys.Complete):
		m.dispatch(p.Complete)
	case key.Matches(msg, m.keys.Reset):
		m.dispatch(kiosk.Reset{})
	case key.Matches(msg, m.keys.Add):
		m.dispatch(kiosk.AddRandomItem{})
	case key.Matches(msg, m.keys.Remove):
		if it, ok := m.lastItem(); ok {
			m.dispatch(kiosk.RemoveItem{ID: it.ID})
		}
	case key.Matches(msg, m.keys.More):
		if it, ok := m.lastItem(); ok {
			m.dispatch(kiosk.SetQuantity{ID: it.ID, Quantity: it.Quantity + 1})
		}
	case key.Matches(msg, m.keys.Less):
		if it, ok := m.lastItem(); ok {
			m.dispatch(kiosk.SetQuantity{ID: it.ID, Quantity: it.Quantity - 1})
		}
	case key.Matches(msg, m.keys.Tip1):
		m.selectTip(0)
	case key.Matches(msg, m.keys.Tip2):
		m.selectTip(1)
	case key.Matches(msg, m.keys.Tip3):
		m.selectTip(2)
	case key.Matches(msg, m.keys.NoTip):
		m.dispatch(p.NoTip)
	case key.Matches(msg, m.keys.CustomTip):
		m.dispatch(p.CustomTip)
	case key.Matches(msg, m.keys.ToggleQR):
		m.dispatch(kiosk.ToggleQR{})
	case key.Matches(msg, m.keys.Pause):
		m.dispatch(kiosk.TogglePause{})
	case key.Matches(msg, m.keys.Panel):
		m.dispatch(kiosk.TogglePanel{})
	}
	return m, nil
}

// handleTipInput edits the custom tip. ok is false for keys it does not use.
func (m Model) handleTipInput(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		m.dispatch(kiosk.Advance{Amount: m.tipInput})
		return m, nil, true
	case tea.KeyBackspace:
		if m.tipInput != "" {
			m.tipInput = m.tipInput[:len(m.tipInput)-1]
		}
		return m, nil, true
	case tea.KeyRunes:
		s := string(msg.Runes)
		if strings.Trim(s, "0123456789.") == "" {
			if len(m.tipInput)+len(s) <= maxTipInput {
				m.tipInput += s
			}
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.state.SessionID
	switch {
	case key.Matches(msg, m.panelKeys.Up):
		if m.panelCursor > 0 {
			m.panelCursor--
		}
	case key.Matches(msg, m.panelKeys.Down):
		if m.panelCursor < len(kiosk.AllScreens)-1 {
			m.panelCursor++
		}
	case key.Matches(msg, m.panelKeys.Jump):
		m.dispatch(kiosk.GoTo{Screen: kiosk.AllScreens[m.panelCursor]})
	case key.Matches(msg, m.panelKeys.SimulateScan):
		return m, m.devCmd("scan", id, func(d DevClient) func(context.Context, string) error { return d.SimulateScan })
	case key.Matches(msg, m.panelKeys.AppReady):
		return m, m.devCmd("app-ready", id, func(d DevClient) func(context.Context, string) error { return d.AppReady })
	case key.Matches(msg, m.panelKeys.HandoffComplete):
		return m, m.devCmd("handoff-complete", id, func(d DevClient) func(context.Context, string) error { return d.HandoffComplete })
	case key.Matches(msg, m.panelKeys.Close):
		m.dispatch(kiosk.TogglePanel{})
	}
	return m, nil
}

func (m Model) dispatch(ev kiosk.Event) {
	if ev != nil {
		m.kiosk.Dispatch(ev)
	}
}

func (m Model) selectTip(i int) {
	if i < len(m.props.TipOptions) {
		m.dispatch(m.props.TipOptions[i].Select)
	}
}

func (m Model) lastItem() (kiosk.CartItem, bool) {
	if len(m.state.Cart) == 0 {
		return kiosk.CartItem{}, false
	}
	return m.state.Cart[len(m.state.Cart)-1], true
}

// timerCmd schedules the timer of the current screen, if it has one.
func (m Model) timerCmd() tea.Cmd {
	var (
		d  time.Duration
		ev kiosk.Event
	)
	switch m.state.Screen {
	case kiosk.ScreenAuth:
		d, ev = m.timing.AuthDelay, kiosk.Advance{}
	case kiosk.ScreenEnd:
		d, ev = m.timing.Idle, kiosk.Idle{}
	case kiosk.ScreenScreensaver, kiosk.ScreenFollow:
		d, ev = m.timing.Screensaver, kiosk.ScreensaverTick{}
	}
	if d <= 0 {
		return nil
	}
	seq := m.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{seq: seq, event: ev}
	})
}

func (m Model) devCmd(action, sessionID string, pick func(DevClient) func(context.Context, string) error) tea.Cmd {
	if m.dev == nil {
		return func() tea.Msg {
			return devResultMsg{action: action, err: fmt.Errorf("no server configured")}
		}
	}
	call := pick(m.dev)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return devResultMsg{action: action, err: call(ctx, sessionID)}
	}
}

func waitForState(sub <-chan kiosk.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-sub
		if !ok {
			return stateClosedMsg{}
		}
		return stateMsg(s)
	}
}
