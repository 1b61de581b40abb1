package chart

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

type annotator struct {
	context  *freetype.Context
	fontFace font.Face
	borders  BorderConfig
}

func newAnnotator(parsedFont *truetype.Font, size float64, borders BorderConfig) *annotator {
	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsedFont)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingNone)
	ctx.SetSrc(image.Black)

	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})

	return &annotator{
		context:  ctx,
		fontFace: face,
		borders:  borders,
	}
}

func (a *annotator) Close() error {
	if a.fontFace != nil {
		return a.fontFace.Close()
	}
	return nil
}

func (a *annotator) annotate(img *image.RGBA, p plot, data *Data, colors []color.Color, xStep, yStep float64) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	ops := []struct {
		msg string
		fn  func() error
	}{
		{"drawing X scale", func() error { return a.drawXScale(img, p, xStep) }},
		{"drawing Y scale", func() error { return a.drawYScale(img, p, yStep) }},
		{"drawing labels", func() error { return a.drawLabels(img, p, data) }},
		{"drawing legend", func() error { return a.drawLegend(img, p, data, colors) }},
		{"drawing info", func() error { return a.drawInfo(img, p, data) }},
	}
	for _, op := range ops {
		if err := op.fn(); err != nil {
			return fmt.Errorf("%s: %w", op.msg, err)
		}
	}

	return nil
}

func (a *annotator) fontHeight() int {
	metrics := a.fontFace.Metrics()
	return (metrics.Ascent + metrics.Descent).Round()
}

func (a *annotator) textWidth(s string) int {
	return font.MeasureString(a.fontFace, s).Round()
}

func (a *annotator) drawString(s string, x, y int) error {
	_, err := a.context.DrawString(s, freetype.Pt(x, y))
	return err
}

func (a *annotator) drawXScale(img *image.RGBA, p plot, step float64) error {
	textY := p.area.Max.Y + tickMarkLength + a.fontHeight()

	for _, v := range p.xTicks(step) {
		x := p.px(v)

		// Draw tick mark
		for y := p.area.Max.Y; y < p.area.Max.Y+tickMarkLength; y++ {
			img.Set(x, y, axisColor)
		}

		label := formatTick(v, step)
		if err := a.drawString(label, x-a.textWidth(label)/2, textY); err != nil {
			return fmt.Errorf("drawing label %q: %w", label, err)
		}
	}
	return nil
}

func (a *annotator) drawYScale(img *image.RGBA, p plot, step float64) error {
	metrics := a.fontFace.Metrics()

	for _, v := range p.yTicks(step) {
		y := p.py(v)

		// Draw tick mark
		for x := p.area.Min.X - tickMarkLength; x < p.area.Min.X; x++ {
			img.Set(x, y, axisColor)
		}

		// Center text vertically relative to the tick mark position
		label := formatTick(v, step)
		textX := p.area.Min.X - tickMarkLength - 3 - a.textWidth(label)
		textY := y + a.fontHeight()/2 - metrics.Descent.Round()
		if err := a.drawString(label, textX, textY); err != nil {
			return fmt.Errorf("drawing label %q: %w", label, err)
		}
	}
	return nil
}

func (a *annotator) drawLabels(img *image.RGBA, p plot, data *Data) error {
	if data.Title != "" {
		x := (img.Bounds().Dx() - a.textWidth(data.Title)) / 2
		if err := a.drawString(data.Title, x, a.borders.Top/2+a.fontHeight()/2); err != nil {
			return err
		}
	}

	if data.XLabel != "" {
		x := p.area.Min.X + (p.area.Dx()-a.textWidth(data.XLabel))/2
		y := p.area.Max.Y + tickMarkLength + 2*a.fontHeight() + 6
		if err := a.drawString(data.XLabel, x, y); err != nil {
			return err
		}
	}

	// No rotated text: the Y label sits above the Y scale
	if data.YLabel != "" {
		if err := a.drawString(data.YLabel, 5, p.area.Min.Y-6); err != nil {
			return err
		}
	}

	return nil
}

func (a *annotator) drawLegend(img *image.RGBA, p plot, data *Data, colors []color.Color) error {
	lineHeight := a.fontHeight() + 4

	width := 0
	for _, s := range data.Series {
		width = max(width, a.textWidth(s.Name))
	}
	left := p.area.Max.X - width - legendSwatch - 20
	top := p.area.Min.Y + 10

	for i, s := range data.Series {
		y := top + i*lineHeight + lineHeight/2
		for x := left; x < left+legendSwatch; x++ {
			for w := 0; w < lineWidth; w++ {
				img.Set(x, y+w, colors[i])
			}
		}

		textY := y + a.fontHeight()/2 - a.fontFace.Metrics().Descent.Round()
		if err := a.drawString(s.Name, left+legendSwatch+6, textY); err != nil {
			return fmt.Errorf("drawing legend entry %q: %w", s.Name, err)
		}
	}
	return nil
}

func (a *annotator) drawInfo(img *image.RGBA, p plot, data *Data) error {
	y := img.Bounds().Max.Y - infoLineHeight*len(data.Info) + a.fontHeight()/2

	for _, line := range data.Info {
		if err := a.drawString(line, p.area.Min.X, y); err != nil {
			return fmt.Errorf("drawing info text: %w", err)
		}
		y += infoLineHeight
	}
	return nil
}
