package board

// MoveObserver is notified after a move has been made with notifications
// requested. Observers run synchronously on the caller's goroutine.
type MoveObserver interface {
	MoveMade(p *Position, m Move)
}

// MoveObserverFunc adapts a function to MoveObserver.
type MoveObserverFunc func(p *Position, m Move)

// MoveMade calls f(p, m).
func (f MoveObserverFunc) MoveMade(p *Position, m Move) {
	f(p, m)
}

type observerEntry struct {
	id int
	o  MoveObserver
}

// Subscribe registers o and returns a function that removes it again.
func (p *Position) Subscribe(o MoveObserver) (cancel func()) {
	if o == nil {
		return func() {}
	}
	p.nextID++
	id := p.nextID
	p.observers = append(p.observers, observerEntry{id: id, o: o})
	return func() {
		for i, e := range p.observers {
			if e.id == id {
				p.observers = append(p.observers[:i:i], p.observers[i+1:]...)
				return
			}
		}
	}
}

func (p *Position) notify(m Move) {
	for _, e := range p.observers {
		e.o.MoveMade(p, m)
	}
}
