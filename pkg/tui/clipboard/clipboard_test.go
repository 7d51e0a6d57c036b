// ABOUTME: Tests for clipboard writes
// ABOUTME: Skips where the host has no clipboard utility

package clipboard

import (
	"errors"
	"testing"

	atotto "github.com/atotto/clipboard"
)

func TestWriteUnsupported(t *testing.T) {
	t.Parallel()

	if !atotto.Unsupported {
		t.Skip("clipboard available on this host")
	}
	if err := Write("x"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v; want ErrUnsupported", err)
	}
}
