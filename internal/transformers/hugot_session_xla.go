//go:build XLA

package transformers

import "github.com/knights-analytics/hugot"

func newHugotSession() (*hugot.Session, error) {
	return hugot.NewXLASession()
}
