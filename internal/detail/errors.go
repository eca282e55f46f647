package detail

import "errors"

var (
	ErrAlreadyOpen   = errors.New("detail view already open")
	ErrNoSpeechInput = errors.New("nothing to speak")
)
