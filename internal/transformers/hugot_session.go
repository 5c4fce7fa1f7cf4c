//go:build !XLA

package transformers

import "github.com/knights-analytics/hugot"

// newHugotSession runs the models on onnxruntime. The shared library must be
// installed where hugot looks for it. Build with -tags XLA to use GoMLX instead.
func newHugotSession() (*hugot.Session, error) {
	return hugot.NewORTSession()
}
