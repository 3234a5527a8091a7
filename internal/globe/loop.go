package globe

// Loop is the event queue that serializes work onto a single goroutine.
// Producers on other goroutines Post callbacks; the owner of the state
// receives them from Tasks (or calls Drain) and runs them in order.
type Loop struct {
	tasks chan func()
}

// NewLoop creates a loop that buffers up to size pending callbacks
func NewLoop(size int) *Loop {
	if size <= 0 {
		size = 64
	}
	return &Loop{tasks: make(chan func(), size)}
}

// Post queues fn without blocking. It returns false and drops fn when the
// queue is full, which coalesces timer ticks while the consumer is busy.
func (l *Loop) Post(fn func()) bool {
	select {
	case l.tasks <- fn:
		return true
	default:
		return false
	}
}

// Tasks returns the channel the owning goroutine receives callbacks from
func (l *Loop) Tasks() <-chan func() {
	return l.tasks
}

// Drain runs every callback currently queued on the calling goroutine and
// returns how many ran
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.tasks:
			fn()
			n++
		default:
			return n
		}
	}
}
