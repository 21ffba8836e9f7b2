package main

import (
	"image/color"

	"github.com/zucenko/dotsnake/model"
)

func HexToF32(u uint32) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b}
}

type GameColor struct {
	r float64
	g float64
	b float64
}

func (c GameColor) RGBA() color.RGBA {
	return color.RGBA{uint8(c.r * 255), uint8(c.g * 255), uint8(c.b * 255), 255}
}

var COLOR_BACKGROUND = HexToF32(0x000000)
var COLOR_FRAME = HexToF32(0x4ade80)
var COLOR_TEXT = HexToF32(0xffffff)
var COLOR_HINT = HexToF32(0x9ca3af)
var COLOR_OVER = HexToF32(0xf87171)

var CELL_COLORS = map[model.CellKind]GameColor{
	model.EMPTY: HexToF32(0x111827),
	model.BODY:  HexToF32(0x16a34a),
	model.HEAD:  HexToF32(0x4ade80),
	model.FOOD:  HexToF32(0xef4444),
}
