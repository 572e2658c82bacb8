package views

import (
	"fmt"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/components"
)

// RenderQuitConfirm renders the quit dialog shown when comments are
// still queued.
func RenderQuitConfirm(styles ui.Styles, pendingCount, focused, width, height int) string {
	message := fmt.Sprintf("You have %d unsubmitted review comment(s).", pendingCount)
	buttons := []components.DialogButton{
		{Label: "Submit & quit", Key: "y"},
		{Label: "Discard & quit", Key: "n"},
		{Label: "Cancel", Key: "c"},
	}
	dialog := components.RenderDialog(styles, "Quit?", message, buttons, focused)
	return ui.PlaceCentre(width, height, dialog)
}
