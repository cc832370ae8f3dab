package frame

import (
	"errors"
	"fmt"
)

// ErrUndefinedFrame is matched by every InternalConfigurationError.
var ErrUndefinedFrame = errors.New("frame: undefined page frame template path")

// InternalConfigurationError reports a render that needs a page frame the
// configuration does not define. Callers should surface it as a server error.
type InternalConfigurationError struct {
	Frame  string
	Reason string
}

func (e *InternalConfigurationError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("%v: %s", ErrUndefinedFrame, e.Reason)
	case e.Frame != "":
		return fmt.Sprintf("%v for frame %q, check the page_frame_template_path configuration", ErrUndefinedFrame, e.Frame)
	default:
		return ErrUndefinedFrame.Error()
	}
}

func (e *InternalConfigurationError) Is(target error) bool {
	return target == ErrUndefinedFrame
}
