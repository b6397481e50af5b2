package kiosk

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-kiosk-demo/config"
)

func newTestMachine() *Machine {
	m := NewMachine(config.Default())
	m.pick = func(int) int { return 0 }
	return m
}

func on(screen Screen) State {
	s := NewState("test-session")
	s.Screen = screen
	return s
}

func TestMachine_CartNeverEmptyOnCart(t *testing.T) {
	m := newTestMachine()

	s := m.Apply(NewState("x"), GoTo{Screen: ScreenCart})
	require.Len(t, s.Cart, 1)
	assert.Equal(t, CartItem{ID: 1, Name: "Cold Brew", Price: 4.75, Quantity: 1}, s.Cart[0])
	assert.Equal(t, "4.75", s.BaseAmount)

	s = m.Apply(s, RemoveItem{ID: 1})
	require.Len(t, s.Cart, 1)
	assert.Equal(t, 2, s.Cart[0].ID)

	s = m.Apply(s, ClearCart{})
	require.Len(t, s.Cart, 1)
	assert.Equal(t, 3, s.Cart[0].ID)

	s = m.Apply(s, SetQuantity{ID: 3, Quantity: 0})
	require.Len(t, s.Cart, 1)
	assert.Equal(t, 4, s.Cart[0].ID)
}

func TestMachine_CartNeverEmptyUnderRandomOps(t *testing.T) {
	m := NewMachine(config.Default())
	rng := rand.New(rand.NewPCG(1, 2))
	s := m.Apply(NewState("x"), GoTo{Screen: ScreenCart})

	for i := 0; i < 500; i++ {
		var ev Event
		switch rng.IntN(5) {
		case 0:
			ev = AddRandomItem{}
		case 1, 2:
			if len(s.Cart) > 0 {
				ev = RemoveItem{ID: s.Cart[rng.IntN(len(s.Cart))].ID}
			} else {
				ev = RemoveItem{ID: -1}
			}
		case 3:
			ev = ClearCart{}
		default:
			if len(s.Cart) > 0 {
				ev = SetQuantity{ID: s.Cart[0].ID, Quantity: rng.IntN(3)}
			} else {
				ev = SetQuantity{ID: -1, Quantity: 0}
			}
		}
		s = m.Apply(s, ev)
		require.Equal(t, ScreenCart, s.Screen)
		require.NotEmpty(t, s.Cart, "cart empty after %#v", ev)
		assert.Equal(t, Subtotal(s.Cart), s.BaseAmount)
	}
}

func TestMachine_CartMayBeEmptyElsewhere(t *testing.T) {
	m := newTestMachine()
	s := m.Apply(on(ScreenHome), AddItem{Name: "Tea", Price: 2})
	s = m.Apply(s, ClearCart{})
	assert.Empty(t, s.Cart)
	assert.Equal(t, ScreenHome, s.Screen)
}

func TestMachine_ItemIDsAreMonotonic(t *testing.T) {
	m := newTestMachine()
	s := on(ScreenHome)
	s = m.Apply(s, AddItem{Name: "A", Price: 1})
	s = m.Apply(s, AddItem{Name: "B", Price: 2})
	s = m.Apply(s, RemoveItem{ID: 2})
	s = m.Apply(s, AddItem{Name: "C", Price: 3})

	require.Len(t, s.Cart, 2)
	assert.Equal(t, 1, s.Cart[0].ID)
	assert.Equal(t, 3, s.Cart[1].ID)
	assert.Equal(t, 4, s.NextItemID)
}

func TestMachine_SetQuantity(t *testing.T) {
	m := newTestMachine()
	s := m.Apply(on(ScreenHome), AddItem{Name: "Bagel", Price: 2.50})
	s = m.Apply(s, SetQuantity{ID: 1, Quantity: 3})
	assert.Equal(t, 3, s.Cart[0].Quantity)
	assert.Equal(t, "7.50", Subtotal(s.Cart))
	assert.Equal(t, 3, ItemCount(s.Cart))
}

func TestMachine_AmountDerivation(t *testing.T) {
	m := newTestMachine()

	s := m.Apply(on(ScreenHome), AddItem{Name: "Big Order", Price: 20})
	s = m.Apply(s, Advance{})
	require.Equal(t, ScreenCart, s.Screen)
	assert.Equal(t, "20.00", s.BaseAmount, "cart amount excludes tax")

	s = m.Apply(s, Advance{Amount: "20.00"})
	require.Equal(t, ScreenPayment, s.Screen)
	assert.Equal(t, "21.75", s.BaseAmount, "payment amount includes tax")

	s = m.Apply(s, Advance{Amount: "12"})
	assert.Equal(t, ScreenAuth, s.Screen)
	assert.Equal(t, "12.00", s.BaseAmount)
}

func TestMachine_AdvanceFollowsOrder(t *testing.T) {
	m := newTestMachine()
	s := on(ScreenHome)
	var visited []Screen
	for i := 0; i < len(ScreenOrder)+2; i++ {
		visited = append(visited, s.Screen)
		s = m.Apply(s, Advance{})
	}
	assert.Equal(t, ScreenOrder, visited[:len(ScreenOrder)])
	assert.Equal(t, ScreenEnd, s.Screen)
}

func TestMachine_TippingRecordsTip(t *testing.T) {
	m := newTestMachine()
	s := on(ScreenTipping)
	s.BaseAmount = "12.00"

	s = m.Apply(s, Advance{Amount: "2"})
	assert.Equal(t, ScreenReward, s.Screen)
	assert.Equal(t, "2.00", s.TipAmount)
	assert.Equal(t, "14.00", s.Total())
}

func TestMachine_CustomTipGoesStraightToEnd(t *testing.T) {
	m := newTestMachine()
	s := m.Apply(on(ScreenCustomTip), Advance{Amount: "3.00"})
	assert.Equal(t, "3.00", s.TipAmount)
	assert.Equal(t, ScreenEnd, s.Screen)
}

func TestMachine_NonNumericAmountIsIgnored(t *testing.T) {
	m := newTestMachine()
	s := on(ScreenCustomTip)
	s.TipAmount = "1.00"
	s = m.Apply(s, Advance{Amount: "lots"})
	assert.Equal(t, "1.00", s.TipAmount)
	assert.Equal(t, ScreenEnd, s.Screen)
}

func TestMachine_OutOfRangeTipIsIgnored(t *testing.T) {
	m := newTestMachine()
	for _, amount := range []string{"99999999999999999999", "-5"} {
		s := on(ScreenCustomTip)
		s.BaseAmount = "10.00"

		s = m.Apply(s, Advance{Amount: amount})
		assert.Equal(t, ScreenEnd, s.Screen, amount)
		assert.Empty(t, s.TipAmount, amount)
		assert.Equal(t, "10.00", s.Total(), amount)
	}
}

func TestMachine_ForcedTransitions(t *testing.T) {
	m := newTestMachine()

	tests := []struct {
		name string
		from State
		ev   Event
		want Screen
	}{
		{"cashout advance ends", on(ScreenCashout), Advance{}, ScreenEnd},
		{"screensaver wakes to home", on(ScreenScreensaver), Advance{}, ScreenHome},
		{"follow wakes to home", on(ScreenFollow), Advance{}, ScreenHome},
		{"back from cart", on(ScreenCart), Back{}, ScreenHome},
		{"back at first screen", on(ScreenHome), Back{}, ScreenHome},
		{"goto jumps", on(ScreenHome), GoTo{Screen: ScreenCashback}, ScreenCashback},
		{"goto unknown is ignored", on(ScreenAuth), GoTo{Screen: "Nope"}, ScreenAuth},
		{"scan from tipping", on(ScreenTipping), Scanned{}, ScreenCashout},
		{"scan from screensaver", on(ScreenScreensaver), Scanned{}, ScreenCashout},
		{"scan on cashout", on(ScreenCashout), Scanned{}, ScreenCashout},
		{"handoff complete on cashout", on(ScreenCashout), HandoffComplete{}, ScreenEnd},
		{"handoff complete elsewhere", on(ScreenReward), HandoffComplete{}, ScreenReward},
		{"idle on end", on(ScreenEnd), Idle{}, ScreenScreensaver},
		{"idle on home", on(ScreenHome), Idle{}, ScreenHome},
		{"screensaver tick", on(ScreenScreensaver), ScreensaverTick{}, ScreenFollow},
		{"follow tick", on(ScreenFollow), ScreensaverTick{}, ScreenScreensaver},
		{"tick outside the loop", on(ScreenEnd), ScreensaverTick{}, ScreenEnd},
		{"nil event", on(ScreenAuth), nil, ScreenAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Apply(tt.from, tt.ev).Screen)
		})
	}
}

func TestMachine_PausedEndIgnoresIdle(t *testing.T) {
	m := newTestMachine()
	s := m.Apply(on(ScreenEnd), TogglePause{})
	require.True(t, s.Paused)
	assert.Equal(t, ScreenEnd, m.Apply(s, Idle{}).Screen)
}

func TestMachine_StatusFlags(t *testing.T) {
	m := newTestMachine()
	s := m.Apply(on(ScreenReward), AppReady{})
	assert.True(t, s.AppReady)
	assert.Equal(t, ScreenReward, s.Screen)

	s = m.Apply(s, Scanned{})
	assert.True(t, s.Scanned)
	s = m.Apply(s, HandoffComplete{})
	assert.True(t, s.HandoffComplete)
	assert.Equal(t, ScreenEnd, s.Screen)
}

func TestMachine_NewSessionClearsHandoffFlags(t *testing.T) {
	m := newTestMachine()
	s := on(ScreenHome)
	s.Scanned, s.AppReady, s.HandoffComplete = true, true, true

	s = m.Apply(s, NewSession{ID: "next"})
	assert.Equal(t, "next", s.SessionID)
	assert.False(t, s.Scanned)
	assert.False(t, s.AppReady)
	assert.False(t, s.HandoffComplete)

	assert.Equal(t, "next", m.Apply(s, NewSession{}).SessionID, "an empty id is ignored")
}

func TestMachine_ResetClearsAmounts(t *testing.T) {
	m := newTestMachine()
	s := on(ScreenEnd)
	s.BaseAmount = "10.00"
	s.TipAmount = "2.00"

	s = m.Apply(s, Reset{})
	assert.Equal(t, ScreenHome, s.Screen)
	assert.Empty(t, s.BaseAmount)
	assert.Empty(t, s.TipAmount)
	assert.Empty(t, s.Total())
}

func TestMachine_Toggles(t *testing.T) {
	m := newTestMachine()
	s := on(ScreenHome)
	s = m.Apply(s, TogglePanel{})
	s = m.Apply(s, ToggleQR{})
	assert.True(t, s.PanelOpen)
	assert.False(t, s.QRVisible)
	s = m.Apply(s, TogglePanel{})
	assert.False(t, s.PanelOpen)
}

func TestMachine_ApplyDoesNotMutateInput(t *testing.T) {
	m := newTestMachine()
	s := m.Apply(on(ScreenHome), AddItem{Name: "Tea", Price: 2})
	before := s.Cart[0]

	_ = m.Apply(s, SetQuantity{ID: before.ID, Quantity: 5})
	_ = m.Apply(s, RemoveItem{ID: before.ID})

	require.Len(t, s.Cart, 1)
	assert.Equal(t, before, s.Cart[0])
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, fallbackSessionID())
}
