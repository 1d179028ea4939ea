package core

import (
	"fmt"

	"github.com/google/uuid"
)

// EventKind identifies the variant of an Event.
type EventKind uint8

const (
	EventKeyPressed EventKind = iota
	EventKeyReleased
	EventKeyTyped
	EventMouseClick
	EventMouseReleased
	EventMouseScrolled
	EventWindowClose
	EventWindowResize
	EventOpenDialogue
	EventLoadFile
	EventSaveFile
	EventGui
	EventEntitySwap
	EventEntityDelete
)

var eventKindNames = [...]string{
	EventKeyPressed:    "KeyPressed",
	EventKeyReleased:   "KeyReleased",
	EventKeyTyped:      "KeyTyped",
	EventMouseClick:    "MouseClick",
	EventMouseReleased: "MouseReleased",
	EventMouseScrolled: "MouseScrolled",
	EventWindowClose:   "WindowClose",
	EventWindowResize:  "WindowResize",
	EventOpenDialogue:  "OpenDialogue",
	EventLoadFile:      "LoadFile",
	EventSaveFile:      "SaveFile",
	EventGui:           "Gui",
	EventEntitySwap:    "EntitySwap",
	EventEntityDelete:  "EntityDelete",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

// Event is something that happened: input, window, UI, scene or file dialogue.
// The set of implementations is closed; consumers switch on the concrete type.
type Event interface {
	Kind() EventKind
	Name() string
	isEvent()
}

type DialogueType uint8

const (
	DialogueFileOpen DialogueType = iota
	DialogueFileSave
	DialogueFileSelect
)

type GuiEventType uint8

const (
	GuiStartSpinner GuiEventType = iota
	GuiEndSpinner
)

type KeyPressedEvent struct {
	KeyCode     KeyCode
	RepeatCount uint32
}

type KeyReleasedEvent struct {
	KeyCode KeyCode
}

type KeyTypedEvent struct {
	Char rune
}

type MouseClickEvent struct {
	Button Button
}

type MouseReleasedEvent struct {
	Button Button
}

type MouseScrolledEvent struct {
	XOffset float64
	YOffset float64
}

type WindowCloseEvent struct{}

type WindowResizeEvent struct {
	Width  uint32
	Height uint32
}

type OpenDialogueEvent struct {
	DialogueType DialogueType
	// Pattern of selectable files, "*.*" when empty.
	ValidFiles string
}

type LoadFileEvent struct {
	AbsPath  string
	FileName string
}

type SaveFileEvent struct {
	AbsPath  string
	FileName string
}

type GuiEvent struct {
	GuiType GuiEventType
	Text    string
}

type EntitySwapEvent struct {
	EntityID uint32
	SceneID  uuid.UUID
}

type EntityDeleteEvent struct {
	EntityID uint32
	SceneID  uuid.UUID
}

func (KeyPressedEvent) Kind() EventKind    { return EventKeyPressed }
func (KeyReleasedEvent) Kind() EventKind   { return EventKeyReleased }
func (KeyTypedEvent) Kind() EventKind      { return EventKeyTyped }
func (MouseClickEvent) Kind() EventKind    { return EventMouseClick }
func (MouseReleasedEvent) Kind() EventKind { return EventMouseReleased }
func (MouseScrolledEvent) Kind() EventKind { return EventMouseScrolled }
func (WindowCloseEvent) Kind() EventKind   { return EventWindowClose }
func (WindowResizeEvent) Kind() EventKind  { return EventWindowResize }
func (OpenDialogueEvent) Kind() EventKind  { return EventOpenDialogue }
func (LoadFileEvent) Kind() EventKind      { return EventLoadFile }
func (SaveFileEvent) Kind() EventKind      { return EventSaveFile }
func (GuiEvent) Kind() EventKind           { return EventGui }
func (EntitySwapEvent) Kind() EventKind    { return EventEntitySwap }
func (EntityDeleteEvent) Kind() EventKind  { return EventEntityDelete }

func (KeyPressedEvent) Name() string    { return "Key pressed event" }
func (KeyReleasedEvent) Name() string   { return "Key released event" }
func (KeyTypedEvent) Name() string      { return "Key typed event" }
func (MouseClickEvent) Name() string    { return "Mouse clicked event" }
func (MouseReleasedEvent) Name() string { return "Mouse released event" }
func (MouseScrolledEvent) Name() string { return "Mouse scrolled event" }
func (WindowCloseEvent) Name() string   { return "Window close event" }
func (WindowResizeEvent) Name() string  { return "Window resize event" }
func (OpenDialogueEvent) Name() string  { return "Open dialogue event" }
func (LoadFileEvent) Name() string      { return "Load file event" }
func (SaveFileEvent) Name() string      { return "Save file event" }
func (GuiEvent) Name() string           { return "Gui event" }
func (EntitySwapEvent) Name() string    { return "Entity swap event" }
func (EntityDeleteEvent) Name() string  { return "Entity delete event" }

func (KeyPressedEvent) isEvent()    {}
func (KeyReleasedEvent) isEvent()   {}
func (KeyTypedEvent) isEvent()      {}
func (MouseClickEvent) isEvent()    {}
func (MouseReleasedEvent) isEvent() {}
func (MouseScrolledEvent) isEvent() {}
func (WindowCloseEvent) isEvent()   {}
func (WindowResizeEvent) isEvent()  {}
func (OpenDialogueEvent) isEvent()  {}
func (LoadFileEvent) isEvent()      {}
func (SaveFileEvent) isEvent()      {}
func (GuiEvent) isEvent()           {}
func (EntitySwapEvent) isEvent()    {}
func (EntityDeleteEvent) isEvent()  {}

// NewOpenDialogueEvent fills in the "*.*" pattern when validFiles is empty.
func NewOpenDialogueEvent(t DialogueType, validFiles string) OpenDialogueEvent {
	if validFiles == "" {
		validFiles = "*.*"
	}
	return OpenDialogueEvent{DialogueType: t, ValidFiles: validFiles}
}
