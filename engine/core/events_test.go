package core

import (
	"testing"

	"github.com/google/uuid"
)

func TestEventKinds(t *testing.T) {
	scene := uuid.New()
	tests := []struct {
		event Event
		kind  EventKind
		name  string
	}{
		{KeyPressedEvent{KeyCode: KEY_A, RepeatCount: 1}, EventKeyPressed, "KeyPressed"},
		{KeyReleasedEvent{KeyCode: KEY_A}, EventKeyReleased, "KeyReleased"},
		{KeyTypedEvent{Char: 'a'}, EventKeyTyped, "KeyTyped"},
		{MouseClickEvent{Button: BUTTON_LEFT}, EventMouseClick, "MouseClick"},
		{MouseReleasedEvent{Button: BUTTON_LEFT}, EventMouseReleased, "MouseReleased"},
		{MouseScrolledEvent{YOffset: 1}, EventMouseScrolled, "MouseScrolled"},
		{WindowCloseEvent{}, EventWindowClose, "WindowClose"},
		{WindowResizeEvent{Width: 1, Height: 1}, EventWindowResize, "WindowResize"},
		{NewOpenDialogueEvent(DialogueFileOpen, ""), EventOpenDialogue, "OpenDialogue"},
		{LoadFileEvent{AbsPath: "/a/b.png", FileName: "b.png"}, EventLoadFile, "LoadFile"},
		{SaveFileEvent{AbsPath: "/a/s.toml", FileName: "s.toml"}, EventSaveFile, "SaveFile"},
		{GuiEvent{GuiType: GuiStartSpinner, Text: "loading"}, EventGui, "Gui"},
		{EntitySwapEvent{EntityID: 3, SceneID: scene}, EventEntitySwap, "EntitySwap"},
		{EntityDeleteEvent{EntityID: 3, SceneID: scene}, EventEntityDelete, "EntityDelete"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.Kind() != tt.kind {
				t.Errorf("Kind() = %s, want %s", tt.event.Kind(), tt.kind)
			}
			if tt.kind.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.kind.String(), tt.name)
			}
			if tt.event.Name() == "" {
				t.Error("expected a non-empty event name")
			}
		})
	}
}

func TestEventKindString_OutOfRange(t *testing.T) {
	if got := EventKind(200).String(); got != "EventKind(200)" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewOpenDialogueEvent_DefaultPattern(t *testing.T) {
	ev := NewOpenDialogueEvent(DialogueFileSelect, "")
	if ev.ValidFiles != "*.*" {
		t.Errorf("ValidFiles = %q, want \"*.*\"", ev.ValidFiles)
	}
	ev = NewOpenDialogueEvent(DialogueFileOpen, "*.png")
	if ev.ValidFiles != "*.png" {
		t.Errorf("ValidFiles = %q, want \"*.png\"", ev.ValidFiles)
	}
}
