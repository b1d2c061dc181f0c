package pdfdoc

import "fmt"

// DocumentUnreadableError indicates the input bytes are not a readable PDF,
// or that no extractable text is present.
type DocumentUnreadableError struct {
	Reason string
	Err    error
}

func (e *DocumentUnreadableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document unreadable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("document unreadable: %s", e.Reason)
}

func (e *DocumentUnreadableError) Unwrap() error { return e.Err }

// RenderingError indicates the produced document was rejected by the
// underlying PDF machinery.
type RenderingError struct {
	Err error
}

func (e *RenderingError) Error() string {
	return fmt.Sprintf("rendering failed: %v", e.Err)
}

func (e *RenderingError) Unwrap() error { return e.Err }
