package core

import (
	"errors"
)

var (
	ErrApplicationExists = errors.New("an application instance already exists")
	ErrEventQueueEmpty   = errors.New("dequeue called on an empty event queue")
	ErrUnknownLogLevel   = errors.New("unknown log level")
)
