package lemmatizer

import (
	"github.com/box1bs/lemmagen/internal/ruleset"
	"github.com/pkg/errors"
)

type Status int

const (
	StatusOK Status = iota
	StatusFileNotFound
	StatusNotAFile
	StatusNotLoaded
	StatusNullBuffer
	StatusMalformedRuleFile
	StatusBufferTooSmall
	StatusLoadFailed
)

var (
	ErrNotLoaded      = errors.New("no ruleset loaded")
	ErrNullBuffer     = errors.New("output buffer not provided")
	ErrBufferTooSmall = errors.New("output buffer too small")
	ErrLoadFailed     = errors.New("ruleset load failed")
)

var statusNames = map[Status]string{
	StatusOK: 				"OK",
	StatusFileNotFound: 	"FileNotFound",
	StatusNotAFile: 		"NotAFile",
	StatusNotLoaded: 		"NotLoaded",
	StatusNullBuffer: 		"NullBuffer",
	StatusMalformedRuleFile: "MalformedRuleFile",
	StatusBufferTooSmall: 	"BufferTooSmall",
	StatusLoadFailed: 		"LoadFailed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Status(unknown)"
}

func (s Status) Err() error {
	switch s {
	case StatusOK:
		return nil
	case StatusFileNotFound:
		return ruleset.ErrFileNotFound
	case StatusNotAFile:
		return ruleset.ErrNotAFile
	case StatusNotLoaded:
		return ErrNotLoaded
	case StatusNullBuffer:
		return ErrNullBuffer
	case StatusMalformedRuleFile:
		return ruleset.ErrMalformedRuleFile
	case StatusBufferTooSmall:
		return ErrBufferTooSmall
	}
	return ErrLoadFailed
}

// StatusOf maps an error from this package or from ruleset to its boundary status.
// Errors it does not recognise are reported as StatusLoadFailed.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ruleset.ErrFileNotFound):
		return StatusFileNotFound
	case errors.Is(err, ruleset.ErrNotAFile):
		return StatusNotAFile
	case errors.Is(err, ruleset.ErrMalformedRuleFile):
		return StatusMalformedRuleFile
	case errors.Is(err, ErrNotLoaded):
		return StatusNotLoaded
	case errors.Is(err, ErrNullBuffer):
		return StatusNullBuffer
	case errors.Is(err, ErrBufferTooSmall):
		return StatusBufferTooSmall
	}
	return StatusLoadFailed
}
