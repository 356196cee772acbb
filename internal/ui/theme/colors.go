// Package theme defines the dark theme used by the live dashboard.
package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Dashboard Dark Theme Colors
var (
	ColorBackground     = color.NRGBA{R: 18, G: 18, B: 18, A: 255}
	ColorSurface        = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	ColorSurfaceVariant = color.NRGBA{R: 45, G: 45, B: 45, A: 255}
	ColorBorder         = color.NRGBA{R: 60, G: 60, B: 60, A: 255}

	ColorPrimary      = color.NRGBA{R: 255, G: 0, B: 0, A: 255} // YouTube red
	ColorPrimaryDark  = color.NRGBA{R: 180, G: 0, B: 0, A: 255}
	ColorPrimaryLight = color.NRGBA{R: 255, G: 120, B: 120, A: 255}

	ColorTextPrimary   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorTextSecondary = color.NRGBA{R: 179, G: 179, B: 179, A: 255}
	ColorTextDisabled  = color.NRGBA{R: 100, G: 100, B: 100, A: 255}

	ColorSuccess = color.NRGBA{R: 0, G: 200, B: 83, A: 255}
	ColorWarning = color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	ColorError   = color.NRGBA{R: 244, G: 67, B: 54, A: 255}

	ColorTableHeader = color.NRGBA{R: 38, G: 38, B: 38, A: 255}
	ColorSidebar     = color.NRGBA{R: 22, G: 22, B: 22, A: 255}
)

// DashboardTheme implements fyne.Theme for the walker's dark dashboard.
type DashboardTheme struct{}

var _ fyne.Theme = (*DashboardTheme)(nil)

func (t *DashboardTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return ColorBackground
	case theme.ColorNameButton:
		return ColorSurface
	case theme.ColorNameDisabledButton:
		return ColorSurfaceVariant
	case theme.ColorNameDisabled:
		return ColorTextDisabled
	case theme.ColorNameError:
		return ColorError
	case theme.ColorNameFocus:
		return ColorPrimary
	case theme.ColorNameForeground:
		return ColorTextPrimary
	case theme.ColorNameHover:
		return ColorSurfaceVariant
	case theme.ColorNameMenuBackground:
		return ColorSurface
	case theme.ColorNameOverlayBackground:
		return ColorSurface
	case theme.ColorNamePlaceHolder:
		return ColorTextSecondary
	case theme.ColorNamePressed:
		return ColorPrimaryDark
	case theme.ColorNamePrimary:
		return ColorPrimary
	case theme.ColorNameScrollBar:
		return ColorBorder
	case theme.ColorNameSeparator:
		return ColorBorder
	case theme.ColorNameSuccess:
		return ColorSuccess
	case theme.ColorNameWarning:
		return ColorWarning
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *DashboardTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *DashboardTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *DashboardTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 18
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameSeparatorThickness:
		return 1
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 16
	case theme.SizeNameCaptionText:
		return 11
	default:
		return theme.DefaultTheme().Size(name)
	}
}
