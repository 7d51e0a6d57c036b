// ABOUTME: Bubble Tea message types carrying backend results into the update loop
// ABOUTME: One message per async operation: load current, load models, switch, send, expiry

package btea

import (
	"github.com/mauromedda/nimdeck/internal/chat"
	"github.com/mauromedda/nimdeck/pkg/api"
	"github.com/mauromedda/nimdeck/pkg/catalog"
)

// CurrentLoadedMsg carries the result of fetching the active model.
type CurrentLoadedMsg struct {
	Model *catalog.ActiveModel
	Err   error
}

// ModelsLoadedMsg carries the result of fetching the model listing.
type ModelsLoadedMsg struct {
	Models []catalog.Model
	Err    error
}

// SwitchDoneMsg carries the result of a switch request for ID.
type SwitchDoneMsg struct {
	ID     string
	Result *api.SwitchResult
	Err    error
}

// ChatReplyMsg carries the outcome of one chat send.
type ChatReplyMsg struct {
	Pending  chat.Pending
	Response *api.MessageResponse
	Err      error
}

// CopyDoneMsg carries the result of copying ID to the clipboard.
type CopyDoneMsg struct {
	ID  string
	Err error
}

// notificationExpiredMsg clears the notification with the matching sequence.
type notificationExpiredMsg struct{ seq int }
