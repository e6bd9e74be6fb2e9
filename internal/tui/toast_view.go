package tui

import (
	"strings"

	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/styles"
)

const toastWidth = 50

// ToastView renders a manager snapshot as a vertical toast stack. It is a
// pure projection: state only selects the visual treatment, it never
// feeds back into the lifecycle engine.
type ToastView struct {
	maxVisible int
}

// NewToastView creates a toast renderer showing at most maxVisible toasts.
func NewToastView(maxVisible int) *ToastView {
	if maxVisible < 1 {
		maxVisible = 1
	}
	return &ToastView{maxVisible: maxVisible}
}

// View renders the snapshot with toasts stacked vertically, oldest at
// top. When the snapshot exceeds the display cap, the oldest toasts are
// hidden; the manager keeps tracking them.
func (v *ToastView) View(snapshot []notify.Notification) string {
	if len(snapshot) == 0 {
		return ""
	}

	if len(snapshot) > v.maxVisible {
		snapshot = snapshot[len(snapshot)-v.maxVisible:]
	}

	rendered := make([]string, 0, len(snapshot))
	for _, n := range snapshot {
		rendered = append(rendered, renderToast(n))
	}

	return strings.Join(rendered, "\n")
}

func renderToast(n notify.Notification) string {
	style := styles.ToastStyle(n.Kind)

	// Entering and dismissing toasts render faint, giving the entrance
	// and exit windows a visible transition.
	if n.State != notify.StateVisible {
		style = style.Faint(true)
	}

	content := styles.KindIcon(n.Kind) + " " + n.Message
	return style.Width(toastWidth).Render(content)
}
