package ui

import (
	"fyne.io/fyne/v2"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

// iconButton is an icon-only button with a hover tooltip. Tooltips render
// once the window content is wrapped by fynetooltip.AddWindowToolTipLayer.
func iconButton(icon fyne.Resource, tooltip string, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon("", icon, tapped)
	btn.SetToolTip(tooltip)
	return btn
}
