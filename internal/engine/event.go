package engine

// ListenerID identifies a subscription so it can be removed later.
type ListenerID uint64

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

// EventWithArg is a multi-cast event carrying one argument. Listeners run
// synchronously in subscription order.
type EventWithArg[T any] struct {
	listeners []listener[T]
	next      ListenerID
}

func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.next++
	e.listeners = append(e.listeners, listener[T]{id: e.next, fn: callback})
	return e.next
}

func (e *EventWithArg[T]) RemoveListener(id ListenerID) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}
