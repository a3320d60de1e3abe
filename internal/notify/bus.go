// Package notify carries state-change notifications from the simulation core
// to presentation collaborators (UI panels, logs, the websocket stream, the
// chronicle). Publishing is synchronous and in-process; subscribers must not
// block.
package notify

import "sync"

// Kind identifies a notification type.
type Kind string

const (
	KindResourceChanged      Kind = "resource_changed"
	KindConspiracyHeat       Kind = "conspiracy_heat"
	KindBuildingPlaced       Kind = "building_placed"
	KindBuildingCompleted    Kind = "building_completed"
	KindRecipeUnlocked       Kind = "recipe_unlocked"
	KindResearchStarted      Kind = "research_started"
	KindResearchCompleted    Kind = "research_completed"
	KindSurvivorRecruited    Kind = "survivor_recruited"
	KindSurvivorDamaged      Kind = "survivor_damaged"
	KindSurvivorDied         Kind = "survivor_died"
	KindSurvivorStateChanged Kind = "survivor_state_changed"
	KindUnitDamaged          Kind = "unit_damaged"
	KindUnitDied             Kind = "unit_died"
	KindEventTriggered       Kind = "event_triggered"
	KindEventResolved        Kind = "event_resolved"
	KindTraderArrived        Kind = "trader_arrived"
	KindTraderLeft           Kind = "trader_left"
	KindTradeCompleted       Kind = "trade_completed"
	KindTradeScam            Kind = "trade_scam"
	KindTradeBonus           Kind = "trade_bonus"
	KindHourChanged          Kind = "hour_changed"
	KindDayChanged           Kind = "day_changed"
)

// Notification is one published state change. Data holds the structured
// payload (entity ids, amounts, snapshots); Message is the human-readable
// line shown in event logs and archived by the chronicle.
type Notification struct {
	Kind    Kind           `json:"kind"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Bus fans notifications out to subscribers in subscription order.
type Bus struct {
	mu     sync.RWMutex
	subs   []func(Notification)
	chans  map[int]chan Notification
	nextID int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{chans: make(map[int]chan Notification)}
}

// Subscribe registers a handler for every published notification.
func (b *Bus) Subscribe(fn func(Notification)) {
	if b == nil || fn == nil {
		return
	}
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
}

// SubscribeChan registers a buffered channel subscriber and returns its id.
// Notifications are dropped rather than blocking when the buffer is full.
func (b *Bus) SubscribeChan(buffer int) (int, <-chan Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	ch := make(chan Notification, buffer)
	b.chans[b.nextID] = ch
	return b.nextID, ch
}

// UnsubscribeChan removes and closes a channel subscriber.
func (b *Bus) UnsubscribeChan(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.chans[id]; ok {
		delete(b.chans, id)
		close(ch)
	}
}

// Publish delivers a notification to all subscribers. A nil bus is a no-op
// so components can run without any presentation attached.
func (b *Bus) Publish(n Notification) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := b.subs
	for _, ch := range b.chans {
		select {
		case ch <- n:
		default:
		}
	}
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(n)
	}
}

// Publishf is shorthand for publishing with just a kind and message.
func (b *Bus) Publishf(kind Kind, message string) {
	b.Publish(Notification{Kind: kind, Message: message})
}
