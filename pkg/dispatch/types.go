package dispatch

// Handler processes one readiness event.
type Handler interface {
	HandleEvent()
}

// HandleEventFunc is the func form of Handler.
type HandleEventFunc func()

// HandleEvent implements Handler.
func (f HandleEventFunc) HandleEvent() {
	f()
}

// TimerHandler processes one timer expiration. The fired timer is
// passed in so the handler can consume the tick.
type TimerHandler interface {
	HandleTimer(*Timer)
}

// HandleTimerFunc is the func form of TimerHandler.
type HandleTimerFunc func(*Timer)

// HandleTimer implements TimerHandler.
func (f HandleTimerFunc) HandleTimer(t *Timer) {
	f(t)
}
