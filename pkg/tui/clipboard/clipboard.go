// ABOUTME: System clipboard write used to copy model IDs out of the dashboard
// ABOUTME: Delegates to atotto/clipboard (pbcopy, xclip/xsel/wl-copy, or the Windows API)

package clipboard

import (
	"errors"
	"fmt"
	"runtime"

	atotto "github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard not supported")

// Writer copies text to a clipboard.
type Writer func(text string) error

// Write copies text to the system clipboard.
func Write(text string) error {
	if atotto.Unsupported {
		return fmt.Errorf("%w on %s", ErrUnsupported, runtime.GOOS)
	}
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
