package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type messageType int

const (
	INFO messageType = iota
	DEBUG
	ERROR
	CRITICAL_ERROR
)

type layer int

const (
	RULESET_LAYER layer = iota
	ENGINE_LAYER
	REPOSITORY_LAYER
	SERVER_LAYER
	MAIN_LAYER
	WORKER_POOL_LAYER
)

var layerNames = [...]string{"ruleset", "engine", "repository", "server", "main", "worker_pool"}

func (l layer) String() string {
	if int(l) < 0 || int(l) >= len(layerNames) {
		return fmt.Sprintf("layer(%d)", int(l))
	}
	return layerNames[l]
}

// Logger writes messages from a buffered channel on a single goroutine,
// so callers on the lemmatize path never wait on I/O. A nil *Logger discards everything.
type Logger struct {
	ch   	chan message
	wg   	*sync.WaitGroup
	once 	*sync.Once
	debug 	bool
}

type message struct {
	text 	string
	t 		messageType
	layer 	layer
}

func NewLogger(info, error io.Writer, cap int) *Logger {
	log := &Logger{
		ch:   	make(chan message, cap),
		wg: 	new(sync.WaitGroup),
		once: 	new(sync.Once),
		debug: 	true,
	}
	log.wg.Add(1)
	go func() {
		defer log.wg.Done()
		for msg := range log.ch {
			switch msg.t {
			case INFO, DEBUG:
				info.Write(log.compareMessage(msg))
			case ERROR, CRITICAL_ERROR:
				error.Write(log.compareMessage(msg))
			}
		}
	}()
	return log
}

// SetDebug toggles DEBUG messages. Must be called before the logger is shared.
func (log *Logger) SetDebug(enabled bool) {
	if log == nil {
		return
	}
	log.debug = enabled
}

func (log *Logger) compareMessage(msg message) []byte {
	var s strings.Builder
	s.WriteString(time.Now().Local().Format("2006-01-02 15:04:05"))
	switch msg.t {
	case INFO:
		s.WriteString(" INFO: ")
	case DEBUG:
		s.WriteString(" DEBUG: ")
	case ERROR:
		s.WriteString(" ERROR: ")
	case CRITICAL_ERROR:
		s.WriteString(" CRITICAL_ERROR: ")
	}
	s.WriteString(strings.TrimRight(msg.text, "\n"))
	s.WriteString(" on layer: " + msg.layer.String() + "\n")
	return []byte(s.String())
}

func (log *Logger) Write(msg message) {
	if log == nil || (msg.t == DEBUG && !log.debug) {
		return
	}
	defer func() {
		// write after Close
		recover()
	}()
	select {
	case log.ch <- msg:
	default:
		fmt.Printf("log channel full, dropping log: %s\n", msg.text)
	}
}

func (log *Logger) Close() {
	if log == nil {
		return
	}
	log.once.Do(func() {
		close(log.ch)
	})
	log.wg.Wait()
}

func NewMessage(layer layer, Type messageType, format string, v ...any) message {
	return message{
		text: fmt.Sprintf(format, v...),
		layer: layer,
		t: Type,
	}
}
