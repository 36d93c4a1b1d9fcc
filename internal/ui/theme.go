package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// MachCostTheme wraps the default theme with a forced light/dark variant
// and slightly denser sizing for the estimate form.
type MachCostTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// ThemeFor returns the theme for a preference value: "light", "dark" or
// anything else for the system variant.
func ThemeFor(pref string) *MachCostTheme {
	t := &MachCostTheme{base: theme.DefaultTheme()}
	switch pref {
	case "light":
		t.variant = theme.VariantLight
	case "dark":
		t.variant = theme.VariantDark
	default:
		t.system = true
	}
	return t
}

func (t *MachCostTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.system {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

func (t *MachCostTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *MachCostTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *MachCostTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 16
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 7
	default:
		return t.base.Size(name)
	}
}

// Theme returns the theme chosen in the saved preferences.
func (a *App) Theme() fyne.Theme {
	return ThemeFor(a.session.Config().Theme)
}
