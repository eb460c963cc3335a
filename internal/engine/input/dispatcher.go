package input

// Listener receives dispatched events.
type Listener func(Event)

type registration struct {
	fn     Listener
	active bool
}

// Dispatcher routes events to listeners by type, in registration order.
// It is meant for the main thread only.
type Dispatcher struct {
	listeners map[EventType][]*registration
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]*registration)}
}

// On registers fn for events of type t. The returned function removes the
// registration; calling it again does nothing.
func (d *Dispatcher) On(t EventType, fn Listener) (remove func()) {
	reg := &registration{fn: fn, active: true}
	d.listeners[t] = append(d.listeners[t], reg)
	return func() {
		if !reg.active {
			return
		}
		reg.active = false
		regs := d.listeners[t]
		for i, r := range regs {
			if r == reg {
				d.listeners[t] = append(regs[:i:i], regs[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers e to every listener registered for its type. A
// listener removed during dispatch is not called afterwards.
func (d *Dispatcher) Dispatch(e Event) {
	regs := d.listeners[e.Type]
	if len(regs) == 0 {
		return
	}
	snapshot := make([]*registration, len(regs))
	copy(snapshot, regs)
	for _, r := range snapshot {
		if r.active {
			r.fn(e)
		}
	}
}

// DispatchAll delivers events in order.
func (d *Dispatcher) DispatchAll(events []Event) {
	for _, e := range events {
		d.Dispatch(e)
	}
}

// Len returns the number of listeners for t.
func (d *Dispatcher) Len(t EventType) int {
	return len(d.listeners[t])
}
