package core

type Button uint8

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key codes follow the platform (GLFW) numbering, printable keys match ASCII.
type KeyCode uint16

const (
	KEY_SPACE         KeyCode = 32
	KEY_APOSTROPHE    KeyCode = 39
	KEY_COMMA         KeyCode = 44
	KEY_MINUS         KeyCode = 45
	KEY_PERIOD        KeyCode = 46
	KEY_SLASH         KeyCode = 47
	KEY_0             KeyCode = 48
	KEY_1             KeyCode = 49
	KEY_2             KeyCode = 50
	KEY_3             KeyCode = 51
	KEY_4             KeyCode = 52
	KEY_5             KeyCode = 53
	KEY_6             KeyCode = 54
	KEY_7             KeyCode = 55
	KEY_8             KeyCode = 56
	KEY_9             KeyCode = 57
	KEY_SEMICOLON     KeyCode = 59
	KEY_EQUAL         KeyCode = 61
	KEY_A             KeyCode = 65
	KEY_B             KeyCode = 66
	KEY_C             KeyCode = 67
	KEY_D             KeyCode = 68
	KEY_E             KeyCode = 69
	KEY_F             KeyCode = 70
	KEY_G             KeyCode = 71
	KEY_H             KeyCode = 72
	KEY_I             KeyCode = 73
	KEY_J             KeyCode = 74
	KEY_K             KeyCode = 75
	KEY_L             KeyCode = 76
	KEY_M             KeyCode = 77
	KEY_N             KeyCode = 78
	KEY_O             KeyCode = 79
	KEY_P             KeyCode = 80
	KEY_Q             KeyCode = 81
	KEY_R             KeyCode = 82
	KEY_S             KeyCode = 83
	KEY_T             KeyCode = 84
	KEY_U             KeyCode = 85
	KEY_V             KeyCode = 86
	KEY_W             KeyCode = 87
	KEY_X             KeyCode = 88
	KEY_Y             KeyCode = 89
	KEY_Z             KeyCode = 90
	KEY_GRAVE         KeyCode = 96
	KEY_ESCAPE        KeyCode = 256
	KEY_ENTER         KeyCode = 257
	KEY_TAB           KeyCode = 258
	KEY_BACKSPACE     KeyCode = 259
	KEY_INSERT        KeyCode = 260
	KEY_DELETE        KeyCode = 261
	KEY_RIGHT         KeyCode = 262
	KEY_LEFT          KeyCode = 263
	KEY_DOWN          KeyCode = 264
	KEY_UP            KeyCode = 265
	KEY_PAGE_UP       KeyCode = 266
	KEY_PAGE_DOWN     KeyCode = 267
	KEY_HOME          KeyCode = 268
	KEY_END           KeyCode = 269
	KEY_F1            KeyCode = 290
	KEY_F2            KeyCode = 291
	KEY_F3            KeyCode = 292
	KEY_F4            KeyCode = 293
	KEY_F5            KeyCode = 294
	KEY_F6            KeyCode = 295
	KEY_F7            KeyCode = 296
	KEY_F8            KeyCode = 297
	KEY_F9            KeyCode = 298
	KEY_F10           KeyCode = 299
	KEY_F11           KeyCode = 300
	KEY_F12           KeyCode = 301
	KEY_LEFT_SHIFT    KeyCode = 340
	KEY_LEFT_CONTROL  KeyCode = 341
	KEY_LEFT_ALT      KeyCode = 342
	KEY_RIGHT_SHIFT   KeyCode = 344
	KEY_RIGHT_CONTROL KeyCode = 345
	KEY_RIGHT_ALT     KeyCode = 346
	KEYS_MAX_KEYS     KeyCode = 349
)

// Mouse state structure
type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool // button states (pressed/released)
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// Input holds current and previous states for keyboard and mouse. It is fed by
// the platform callbacks and polled by layers, both on the main thread.
type Input struct {
	keyboardCurrent  KeyboardState
	keyboardPrevious KeyboardState
	mouseCurrent     MouseState
	mousePrevious    MouseState

	dispatcher *EventDispatcher
}

func NewInput(dispatcher *EventDispatcher) *Input {
	LogInfo("Input subsystem initialized.")
	return &Input{dispatcher: dispatcher}
}

// Update copies the current states into the previous ones. Called once per frame.
func (in *Input) Update() {
	in.keyboardPrevious = in.keyboardCurrent
	in.mousePrevious = in.mouseCurrent
}

// keyboard input
func (in *Input) IsKeyDown(key KeyCode) bool {
	if key >= KEYS_MAX_KEYS {
		return false
	}
	return in.keyboardCurrent.Keys[key]
}

func (in *Input) IsKeyUp(key KeyCode) bool {
	return !in.IsKeyDown(key)
}

func (in *Input) WasKeyDown(key KeyCode) bool {
	if key >= KEYS_MAX_KEYS {
		return false
	}
	return in.keyboardPrevious.Keys[key]
}

func (in *Input) WasKeyUp(key KeyCode) bool {
	return !in.WasKeyDown(key)
}

// ProcessKey records a key transition and queues the matching event.
// A repeat of an already pressed key queues a KeyPressedEvent carrying repeatCount.
func (in *Input) ProcessKey(key KeyCode, pressed bool, repeatCount uint32) {
	if key >= KEYS_MAX_KEYS {
		LogDebug("ignoring out of range key code %d", key)
		return
	}
	if in.keyboardCurrent.Keys[key] == pressed {
		if pressed && repeatCount > 0 {
			in.dispatcher.QueueEvent(KeyPressedEvent{KeyCode: key, RepeatCount: repeatCount})
		}
		return
	}
	in.keyboardCurrent.Keys[key] = pressed
	if pressed {
		in.dispatcher.QueueEvent(KeyPressedEvent{KeyCode: key, RepeatCount: repeatCount})
	} else {
		in.dispatcher.QueueEvent(KeyReleasedEvent{KeyCode: key})
	}
}

// mouse input
func (in *Input) IsButtonDown(button Button) bool {
	if button >= BUTTON_MAX_BUTTONS {
		return false
	}
	return in.mouseCurrent.Buttons[button]
}

func (in *Input) IsButtonUp(button Button) bool {
	return !in.IsButtonDown(button)
}

func (in *Input) WasButtonDown(button Button) bool {
	if button >= BUTTON_MAX_BUTTONS {
		return false
	}
	return in.mousePrevious.Buttons[button]
}

func (in *Input) MousePosition() (float64, float64) {
	return in.mouseCurrent.X, in.mouseCurrent.Y
}

func (in *Input) PreviousMousePosition() (float64, float64) {
	return in.mousePrevious.X, in.mousePrevious.Y
}

func (in *Input) ProcessButton(button Button, pressed bool) {
	if button >= BUTTON_MAX_BUTTONS {
		return
	}
	// If the state changed, fire an event.
	if in.mouseCurrent.Buttons[button] == pressed {
		return
	}
	in.mouseCurrent.Buttons[button] = pressed
	if pressed {
		in.dispatcher.QueueEvent(MouseClickEvent{Button: button})
	} else {
		in.dispatcher.QueueEvent(MouseReleasedEvent{Button: button})
	}
}

// ProcessMouseMove only tracks the cursor; there is no move event kind.
func (in *Input) ProcessMouseMove(x, y float64) {
	in.mouseCurrent.X = x
	in.mouseCurrent.Y = y
}

func (in *Input) ProcessMouseWheel(xOffset, yOffset float64) {
	in.dispatcher.QueueEvent(MouseScrolledEvent{XOffset: xOffset, YOffset: yOffset})
}
