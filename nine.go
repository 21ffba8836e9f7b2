package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a nine-slice panel: corners keep their size, edges stretch along
// one axis and the middle stretches along both.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B             float64
	border              int
	x, y, width, height int
}

// NewFrame builds the board frame texture: an opaque border of the given
// thickness around a transparent center.
func NewFrame(border int, c GameColor) (*Nine, error) {
	side := border*2 + 1
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if x < border || y < border || x >= side-border || y >= side-border {
				img.Set(x, y, color.White)
			}
		}
	}
	tex, err := ebiten.NewImageFromImage(img, ebiten.FilterNearest)
	if err != nil {
		return nil, err
	}
	return &Nine{images: tex, alpha: 1, R: c.r, G: c.g, B: c.b, border: border}, nil
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
}

func (n *Nine) Draw(screen *ebiten.Image) {
	b := n.border
	side := b*2 + 1
	// source and target spans per axis: start edge, middle, end edge
	src := [3][2]int{{0, b}, {b, b + 1}, {b + 1, side}}
	dstX := [3][2]int{{n.x, n.x + b}, {n.x + b, n.x + n.width - b}, {n.x + n.width - b, n.x + n.width}}
	dstY := [3][2]int{{n.y, n.y + b}, {n.y + b, n.y + n.height - b}, {n.y + n.height - b, n.y + n.height}}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sw := src[col][1] - src[col][0]
			sh := src[row][1] - src[row][0]
			dw := dstX[col][1] - dstX[col][0]
			dh := dstY[row][1] - dstY[row][0]
			if dw <= 0 || dh <= 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(dw)/float64(sw), float64(dh)/float64(sh))
			op.GeoM.Translate(float64(dstX[col][0]), float64(dstY[row][0]))
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			part := n.images.SubImage(image.Rect(src[col][0], src[row][0], src[col][1], src[row][1])).(*ebiten.Image)
			screen.DrawImage(part, op)
		}
	}
}
