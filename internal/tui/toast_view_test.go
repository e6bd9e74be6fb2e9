package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/styles"
)

func TestToastView_View_empty(t *testing.T) {
	v := NewToastView(5)

	assert.Empty(t, v.View(nil))
}

func TestToastView_View_renders_each_kind(t *testing.T) {
	tests := []struct {
		kind notify.Kind
		icon string
	}{
		{notify.KindError, styles.IconNotifyError},
		{notify.KindWarning, styles.IconNotifyWarning},
		{notify.KindSuccess, styles.IconNotifySuccess},
		{notify.KindInfo, styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			v := NewToastView(5)

			out := v.View([]notify.Notification{
				{Kind: tt.kind, Message: "test msg", State: notify.StateVisible},
			})

			require.NotEmpty(t, out)
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "test msg")
		})
	}
}

func TestToastView_View_stacks_in_order(t *testing.T) {
	v := NewToastView(5)

	out := v.View([]notify.Notification{
		{Kind: notify.KindInfo, Message: "first", State: notify.StateVisible},
		{Kind: notify.KindError, Message: "second", State: notify.StateVisible},
	})

	firstIdx := strings.Index(out, "first")
	secondIdx := strings.Index(out, "second")

	require.NotEqual(t, -1, firstIdx)
	require.NotEqual(t, -1, secondIdx)
	// Oldest (first) should appear before newest (second) in the output.
	assert.Less(t, firstIdx, secondIdx)
}

func TestToastView_View_caps_at_max_visible(t *testing.T) {
	v := NewToastView(2)

	out := v.View([]notify.Notification{
		{Kind: notify.KindInfo, Message: "oldest", State: notify.StateVisible},
		{Kind: notify.KindInfo, Message: "middle", State: notify.StateVisible},
		{Kind: notify.KindInfo, Message: "newest", State: notify.StateVisible},
	})

	assert.NotContains(t, out, "oldest")
	assert.Contains(t, out, "middle")
	assert.Contains(t, out, "newest")
}

func TestToastView_View_unknown_kind_uses_info_treatment(t *testing.T) {
	v := NewToastView(5)

	out := v.View([]notify.Notification{
		{Kind: notify.Kind("fatal"), Message: "odd", State: notify.StateVisible},
	})

	assert.Contains(t, out, styles.IconNotifyInfo)
	assert.Contains(t, out, "odd")
}
