package platform

import (
	"sort"
	"sync"
)

// DeviceKind identifies the class of a connected device.
type DeviceKind int

const (
	// DeviceKeyboard is a keyboard.
	DeviceKeyboard DeviceKind = iota
	// DeviceMouse is a mouse or trackpad.
	DeviceMouse
	// DeviceController is a game controller.
	DeviceController
)

// String returns the device kind name.
func (k DeviceKind) String() string {
	switch k {
	case DeviceKeyboard:
		return "keyboard"
	case DeviceMouse:
		return "mouse"
	case DeviceController:
		return "controller"
	default:
		return "unknown"
	}
}

// ConnectObserver is called when a device connects.
type ConnectObserver func(kind DeviceKind)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	kind     DeviceKind
	all      bool
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.notifier == nil {
		return
	}
	s.notifier.unsubscribe(s.id)
	s.notifier = nil
}

// Notifier delivers device connect notifications. Delivery is synchronous
// on the caller's goroutine, in subscription order.
type Notifier struct {
	mu sync.RWMutex

	// Observers for every device kind
	allObservers map[uint64]ConnectObserver

	// Kind specific observers
	kindObservers map[DeviceKind]map[uint64]ConnectObserver

	// Next subscription ID
	nextID uint64

	closed bool
}

// NewNotifier creates a Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		allObservers:  make(map[uint64]ConnectObserver),
		kindObservers: make(map[DeviceKind]map[uint64]ConnectObserver),
	}
}

// Subscribe registers an observer for every device kind.
func (n *Notifier) Subscribe(observer ConnectObserver) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.allObservers[id] = observer

	return &Subscription{id: id, all: true, notifier: n}
}

// SubscribeKind registers an observer for one device kind.
func (n *Notifier) SubscribeKind(kind DeviceKind, observer ConnectObserver) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.kindObservers[kind] == nil {
		n.kindObservers[kind] = make(map[uint64]ConnectObserver)
	}
	n.kindObservers[kind][id] = observer

	return &Subscription{id: id, kind: kind, notifier: n}
}

// Connected announces that a device of the given kind connected.
func (n *Notifier) Connected(kind DeviceKind) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}

	type ordered struct {
		id  uint64
		obs ConnectObserver
	}
	var list []ordered
	for id, obs := range n.allObservers {
		list = append(list, ordered{id, obs})
	}
	for id, obs := range n.kindObservers[kind] {
		list = append(list, ordered{id, obs})
	}
	n.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].id < list[j].id })

	// Call observers outside the lock
	for _, o := range list {
		o.obs(kind)
	}
}

// Close stops delivery. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.allObservers, id)
	for kind, observers := range n.kindObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.kindObservers, kind)
		}
	}
}
