package factory

import (
	cfg "github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/components"
	"github.com/solarlune/resolv"
)

// NewSpace returns a broad-phase grid covering the viewport.
func NewSpace() *resolv.Space {
	cell := cfg.Bodies.SpaceCellSize
	return resolv.NewSpace(cfg.C.Width, cfg.C.Height, cell, cell)
}

// addProxy registers a padded stand-in for b in space.
func addProxy(space *resolv.Space, b *components.Body, tags ...string) {
	obj := resolv.NewObject(
		b.X-components.ProxyPad,
		b.Y-components.ProxyPad,
		b.W+2*components.ProxyPad,
		b.H+2*components.ProxyPad,
		tags...,
	)
	obj.Data = b
	b.Proxy = obj
	space.Add(obj)
}
