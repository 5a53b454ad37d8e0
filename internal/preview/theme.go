package preview

import "github.com/gdamore/tcell/v2"

// ColorTheme defines preview colors.
type ColorTheme struct {
	EditorFg  tcell.Color
	PreviewFg tcell.Color
	HeadingFg tcell.Color
	ListFg    tcell.Color
	Separator tcell.Color
	StatusBg  tcell.Color
	StatusFg  tcell.Color
	DirtyFg   tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		EditorFg:  tcell.ColorDefault,
		PreviewFg: tcell.ColorDefault,
		HeadingFg: tcell.Color33,
		ListFg:    tcell.Color44,
		Separator: tcell.ColorLightSlateGray,
		StatusBg:  tcell.Color33,
		StatusFg:  tcell.ColorWhite,
		DirtyFg:   tcell.Color214,
	}
}
