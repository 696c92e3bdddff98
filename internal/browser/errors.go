package browser

import "fmt"

// NavigationError reports an unreachable target or invalid URL.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// ScreenshotError reports a failed capture.
type ScreenshotError struct {
	Err error
}

func (e *ScreenshotError) Error() string {
	return fmt.Sprintf("capture screenshot: %v", e.Err)
}

func (e *ScreenshotError) Unwrap() error { return e.Err }
