// Package ui provides the view-state coordination layer for Grid Manager.
// This file contains icon generation utilities for the system tray.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/yllada/grid-manager/common"
)

// IconConfig defines the configuration for tray icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	TabColor    color.RGBA
	BadgeColor  color.RGBA
	ShowBadge   bool
}

// idleIconConfig is the folder icon shown when all gateways are up to date.
func idleIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{96, 125, 139, 255},  // Blue gray
		BorderColor: color.RGBA{69, 90, 100, 255},   // Dark blue gray
		TabColor:    color.RGBA{120, 144, 156, 255}, // Light blue gray
	}
}

// syncingIconConfig is the folder icon shown while any folder transfers.
func syncingIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{33, 150, 243, 255}, // Blue
		BorderColor: color.RGBA{21, 101, 192, 255}, // Dark blue
		TabColor:    color.RGBA{100, 181, 246, 255},
	}
}

// withBadge marks a config with the unread-message badge.
func withBadge(cfg IconConfig) IconConfig {
	cfg.ShowBadge = true
	cfg.BadgeColor = color.RGBA{244, 67, 54, 255} // Red
	return cfg
}

// IconGenerator generates PNG icons for the system tray.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawFolder(img)
	if g.config.ShowBadge {
		g.drawBadge(img)
	}

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// drawFolder draws a simple folder glyph: a tab over a body rectangle.
func (g *IconGenerator) drawFolder(img *image.RGBA) {
	size := g.config.Size
	bodyTop := size * 6 / 22
	bodyBottom := size - 3
	left := 2
	right := size - 3
	tabRight := size * 10 / 22

	// Tab
	for y := bodyTop - 3; y < bodyTop; y++ {
		for x := left; x <= tabRight; x++ {
			img.Set(x, y, g.config.TabColor)
		}
	}

	// Body with border
	for y := bodyTop; y <= bodyBottom; y++ {
		for x := left; x <= right; x++ {
			isBorder := y == bodyTop || y == bodyBottom || x == left || x == right
			if isBorder {
				img.Set(x, y, g.config.BorderColor)
			} else {
				img.Set(x, y, g.config.FillColor)
			}
		}
	}
}

// drawBadge draws the unread-message dot in the upper-right corner.
func (g *IconGenerator) drawBadge(img *image.RGBA) {
	size := g.config.Size
	cx := size - 5
	cy := 5
	r := size * 4 / 22

	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r && x >= 0 && x < size && y >= 0 && y < size {
				img.Set(x, y, g.config.BadgeColor)
			}
		}
	}
}

// GenerateIdleIcon generates the up-to-date tray icon.
func GenerateIdleIcon() []byte {
	return NewIconGenerator(idleIconConfig()).Generate()
}

// GenerateSyncingIcon generates the transferring tray icon.
func GenerateSyncingIcon() []byte {
	return NewIconGenerator(syncingIconConfig()).Generate()
}

// GenerateIdleUnreadIcon generates the up-to-date icon with the unread badge.
func GenerateIdleUnreadIcon() []byte {
	return NewIconGenerator(withBadge(idleIconConfig())).Generate()
}

// GenerateSyncingUnreadIcon generates the transferring icon with the unread badge.
func GenerateSyncingUnreadIcon() []byte {
	return NewIconGenerator(withBadge(syncingIconConfig())).Generate()
}
