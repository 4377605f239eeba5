// Package ui draws the viewer's parameter panel. It needs the ebiten build tag.
package ui
