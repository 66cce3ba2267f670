//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// catalogTheme overrides the default theme colors with the light/dark
// palettes of the dashboard; everything else falls through to the base theme.
type catalogTheme struct {
	dark bool
}

var _ fyne.Theme = (*catalogTheme)(nil)

// Palette values for both variants.
var (
	lightBg     = color.NRGBA{R: 0xf7, G: 0xf7, B: 0xfa, A: 0xff}
	lightPanel  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	lightFg     = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	lightAccent = color.NRGBA{R: 0x2d, G: 0x7d, B: 0xd2, A: 0xff}

	darkBg     = color.NRGBA{R: 0x12, G: 0x14, B: 0x1b, A: 0xff}
	darkPanel  = color.NRGBA{R: 0x1c, G: 0x1f, B: 0x2a, A: 0xff}
	darkFg     = color.NRGBA{R: 0xe9, G: 0xec, B: 0xf5, A: 0xff}
	darkAccent = color.NRGBA{R: 0x7c, G: 0xb7, B: 0xff, A: 0xff}
)

func newCatalogTheme(name string) *catalogTheme {
	return &catalogTheme{dark: name == ThemeDark}
}

func (t *catalogTheme) variant() fyne.ThemeVariant {
	if t.dark {
		return theme.VariantDark
	}
	return theme.VariantLight
}

func (t *catalogTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		if t.dark {
			return darkBg
		}
		return lightBg
	case theme.ColorNameInputBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		if t.dark {
			return darkPanel
		}
		return lightPanel
	case theme.ColorNameForeground:
		if t.dark {
			return darkFg
		}
		return lightFg
	case theme.ColorNamePrimary:
		if t.dark {
			return darkAccent
		}
		return lightAccent
	default:
		return theme.DefaultTheme().Color(name, t.variant())
	}
}

func (t *catalogTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *catalogTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *catalogTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
