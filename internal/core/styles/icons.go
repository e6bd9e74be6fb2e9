package styles

import "github.com/colonyops/beacon/internal/core/notify"

// Notification icons per kind.
var (
	IconNotifyError   = "✗"
	IconNotifyWarning = "▲"
	IconNotifySuccess = "✓"
	IconNotifyInfo    = "●"
)

// KindIcon returns the icon for a kind, falling back to info.
func KindIcon(k notify.Kind) string {
	switch notify.NormalizeKind(k) {
	case notify.KindError:
		return IconNotifyError
	case notify.KindWarning:
		return IconNotifyWarning
	case notify.KindSuccess:
		return IconNotifySuccess
	default:
		return IconNotifyInfo
	}
}
