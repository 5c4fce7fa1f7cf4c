//go:build !XLA

package transformers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHugotSession(t *testing.T) {
	req := require.New(t)

	session, err := newHugotSession()
	if err != nil {
		// No onnxruntime shared library on this machine.
		req.Nil(session)
		return
	}
	req.NotNil(session)
	req.NoError(session.Destroy())
}
