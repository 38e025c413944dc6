package resource

import "sync"

// Table maps handles to Go values tagged with the type ID of the foreign
// interface they back. It is safe for concurrent use.
type Table struct {
	store     slots
	observers []Observer
	obsMu     sync.RWMutex
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Insert stores value under typeID and returns its handle, which is never 0.
func (t *Table) Insert(typeID uint32, value any) Handle {
	h := t.store.put(typeID, value)
	t.notify(Event{
		Type:   EventCreated,
		Handle: h,
		TypeID: typeID,
		Value:  value,
	})
	return h
}

// Lookup returns the value behind handle if it was inserted with typeID.
func (t *Table) Lookup(handle Handle, typeID uint32) (any, bool) {
	it, ok := t.store.lookup(handle)
	if !ok || it.typeID != typeID {
		return nil, false
	}
	return it.value, true
}

// Remove takes the value out of the table, calls its Drop method if it has
// one and then notifies observers. Observers see the dropped event even when
// Drop panics; the panic is left to the caller.
func (t *Table) Remove(handle Handle) (any, bool) {
	it, ok := t.store.take(handle)
	if !ok {
		return nil, false
	}
	defer t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		TypeID: it.typeID,
		Value:  it.value,
	})
	if d, ok := it.value.(Dropper); ok {
		d.Drop()
	}
	return it.value, true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
// ObserverFunc values are not comparable and cannot be removed.
func (t *Table) Unsubscribe(o Observer) {
	if _, ok := o.(ObserverFunc); ok {
		return
	}
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live values.
func (t *Table) Len() int {
	return t.store.len()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
