package core

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed. Data is *KeyEvent.
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released. Data is *KeyEvent.
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Resized/resolution changed from the OS. Data is *SystemEvent.
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	// Every requested asset is resident on the GPU. Data is the asset count.
	EVENT_CODE_ASSETS_READY SystemEventCode = 0x09

	// Config file changed on disk and was parsed again. Data is the new config.
	EVENT_CODE_CONFIG_RELOADED SystemEventCode = 0x0A

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// Key codes follow GLFW numbering.
const (
	KEY_ESCAPE = 256
)

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode int
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type FnOnEvent func(context EventContext)

// EventBus dispatches events synchronously on the calling goroutine. The engine
// only fires from the main thread, so listeners never run concurrently.
type EventBus struct {
	registered map[SystemEventCode][]FnOnEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[SystemEventCode][]FnOnEvent),
	}
}

func (eb *EventBus) Register(code SystemEventCode, onEvent FnOnEvent) {
	eb.registered[code] = append(eb.registered[code], onEvent)
}

// Fire calls every listener registered for context.Type in registration order.
// Returns false when nobody listens for the code.
func (eb *EventBus) Fire(context EventContext) bool {
	listeners := eb.registered[context.Type]
	if len(listeners) == 0 {
		return false
	}
	for _, l := range listeners {
		l(context)
	}
	return true
}

func (eb *EventBus) Shutdown() error {
	eb.registered = make(map[SystemEventCode][]FnOnEvent)
	return nil
}
