package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette shared by the setup form, dialogs and history browser.
var MenuColors = struct {
	BorderFocus tcell.Color // Focused trade list border
	Label       tcell.Color // Field labels and list text
	Hint        tcell.Color // Key hints and secondary text
	Selected    tcell.Color // Best score highlight
	ButtonBG    tcell.Color // Button background
	ButtonFocus tcell.Color // Focused button and selected row
	ButtonText  tcell.Color // Button text
}{
	BorderFocus: tcell.PaletteColor(109), // Brighter blue
	Label:       tcell.PaletteColor(250), // Light gray
	Hint:        tcell.PaletteColor(245), // Dim gray
	Selected:    tcell.PaletteColor(109), // Bright blue
	ButtonBG:    tcell.PaletteColor(60),  // Nord blue
	ButtonFocus: tcell.PaletteColor(109), // Brighter blue
	ButtonText:  tcell.PaletteColor(255), // White
}
