package sandpile

import "errors"

var (
	// ErrInvalidProbability reports a toppling probability outside (0, 1].
	ErrInvalidProbability = errors.New("probability value must be between 0.0 and 1.0")
	// ErrNeverStable reports a toroidal pile that cannot settle: it holds
	// more grains than any stable grid can, or its cascade toppled every cell.
	ErrNeverStable = errors.New("grid can never stabilize")
	// ErrToppleLimit reports an exhausted topple budget during a cascade.
	ErrToppleLimit = errors.New("topple limit reached")
	// ErrSweepLimit reports a pile that did not stabilize within the sweep cap.
	ErrSweepLimit = errors.New("sweep limit reached")
	// ErrUnknownMode reports an unrecognised toppling mode name.
	ErrUnknownMode = errors.New("unknown toppling mode")
)
