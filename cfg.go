package main

import (
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type Faces struct {
	Title font.Face
	Score font.Face
	Hint  font.Face
}

func LoadFaces() (*Faces, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parsing go regular")
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parsing go bold")
	}
	return &Faces{
		Title: newFace(bold, 28),
		Score: newFace(regular, 20),
		Hint:  newFace(regular, 14),
	}, nil
}

func newFace(tt *truetype.Font, size float64) font.Face {
	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:       size,
		DPI:        dpi,
		SubPixelsX: 100,
		Hinting:    font.HintingFull,
	})
}
