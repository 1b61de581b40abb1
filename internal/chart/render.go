// Package chart renders line charts into raster images.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	dpi            = 72.0
	fontSize       = 14.0
	tickMarkLength = 5
	pixelsPerLabel = 100.0
	lineWidth      = 2
	legendSwatch   = 24

	defaultWidth  = 1000
	defaultHeight = 600

	// Default border sizes in pixels
	defaultTopBorder    = 50
	defaultLeftBorder   = 80
	defaultBottomBorder = 70
	defaultRightBorder  = 30
	infoLineHeight      = 20
)

// BorderConfig defines the white space around the plot area
type BorderConfig struct {
	Top    int // Space for the title
	Left   int // Space for the Y scale
	Bottom int // Space for the X scale and axis label
	Right  int // Right padding
}

// Config holds all configuration options for chart rendering
type Config struct {
	Width      int        // Image width in pixels
	Height     int        // Image height in pixels
	FontSize   float64    // Font size in points
	ColorTheme ColorTheme // Color scheme for the series

	BorderConfig BorderConfig
}

func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("chart.Config: image size must not be negative: %dx%d", c.Width, c.Height)
	}
	if c.FontSize < 0 {
		return fmt.Errorf("chart.Config: font size must not be negative: %g", c.FontSize)
	}
	if c.ColorTheme != "" {
		if _, ok := validColorThemes[c.ColorTheme]; !ok {
			return fmt.Errorf("chart.Config: invalid color theme: %s", c.ColorTheme)
		}
	}
	return nil
}

// Renderer draws line charts
type Renderer struct {
	config Config
	font   *truetype.Font
}

// NewRenderer creates a new chart renderer with the given configuration
func NewRenderer(config Config) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set defaults for zero values
	if config.Width == 0 {
		config.Width = defaultWidth
	}
	if config.Height == 0 {
		config.Height = defaultHeight
	}
	if config.FontSize == 0 {
		config.FontSize = fontSize
	}
	if config.ColorTheme == "" {
		config.ColorTheme = ClassicTheme
	}
	if config.BorderConfig.Top == 0 {
		config.BorderConfig.Top = defaultTopBorder
	}
	if config.BorderConfig.Left == 0 {
		config.BorderConfig.Left = defaultLeftBorder
	}
	if config.BorderConfig.Bottom == 0 {
		config.BorderConfig.Bottom = defaultBottomBorder
	}
	if config.BorderConfig.Right == 0 {
		config.BorderConfig.Right = defaultRightBorder
	}

	parsedFont, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	return &Renderer{config: config, font: parsedFont}, nil
}

// Render creates an image of the chart
func (r *Renderer) Render(data *Data) (*image.RGBA, error) {
	if len(data.Series) == 0 {
		return nil, fmt.Errorf("rendering chart: no series")
	}

	bounds := data.Bounds()
	if !bounds.valid() {
		return nil, fmt.Errorf("rendering chart: no finite points")
	}

	borders := r.config.BorderConfig
	borders.Bottom += infoLineHeight * len(data.Info)

	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height+infoLineHeight*len(data.Info)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	area := image.Rect(borders.Left, borders.Top, img.Bounds().Dx()-borders.Right, img.Bounds().Dy()-borders.Bottom)
	if area.Dx() < 10 || area.Dy() < 10 {
		return nil, fmt.Errorf("rendering chart: plot area too small: %dx%d", area.Dx(), area.Dy())
	}

	p := plot{area: area, bounds: bounds}
	xStep := niceStep(bounds.XMax-bounds.XMin, float64(area.Dx())/pixelsPerLabel)
	yStep := niceStep(bounds.YMax-bounds.YMin, float64(area.Dy())/(pixelsPerLabel/2))

	p.drawGrid(img, xStep, yStep)

	colors := palette(r.config.ColorTheme, len(data.Series))
	for i, s := range data.Series {
		p.drawSeries(img, s, colors[i])
	}
	p.drawFrame(img)

	ann := newAnnotator(r.font, r.config.FontSize, borders)
	defer ann.Close()

	if err := ann.annotate(img, p, data, colors, xStep, yStep); err != nil {
		return nil, fmt.Errorf("drawing annotations: %w", err)
	}

	return img, nil
}

// plot maps data coordinates into the plot area
type plot struct {
	area   image.Rectangle
	bounds Bounds
}

func (p plot) px(x float64) int {
	ratio := (x - p.bounds.XMin) / (p.bounds.XMax - p.bounds.XMin)
	return p.area.Min.X + int(math.Round(ratio*float64(p.area.Dx()-1)))
}

func (p plot) py(y float64) int {
	ratio := (y - p.bounds.YMin) / (p.bounds.YMax - p.bounds.YMin)
	return p.area.Max.Y - 1 - int(math.Round(ratio*float64(p.area.Dy()-1)))
}

func (p plot) xTicks(step float64) []float64 {
	return ticks(p.bounds.XMin, p.bounds.XMax, step)
}

func (p plot) yTicks(step float64) []float64 {
	return ticks(p.bounds.YMin, p.bounds.YMax, step)
}

func (p plot) drawGrid(img *image.RGBA, xStep, yStep float64) {
	for _, x := range p.xTicks(xStep) {
		px := p.px(x)
		for y := p.area.Min.Y; y < p.area.Max.Y; y++ {
			img.Set(px, y, gridColor)
		}
	}
	for _, y := range p.yTicks(yStep) {
		py := p.py(y)
		for x := p.area.Min.X; x < p.area.Max.X; x++ {
			img.Set(x, py, gridColor)
		}
	}
}

func (p plot) drawFrame(img *image.RGBA) {
	for x := p.area.Min.X; x < p.area.Max.X; x++ {
		img.Set(x, p.area.Min.Y, axisColor)
		img.Set(x, p.area.Max.Y-1, axisColor)
	}
	for y := p.area.Min.Y; y < p.area.Max.Y; y++ {
		img.Set(p.area.Min.X, y, axisColor)
		img.Set(p.area.Max.X-1, y, axisColor)
	}
}

func (p plot) drawSeries(img *image.RGBA, s Series, c color.Color) {
	prevValid := false
	var x0, y0 int
	for i := range min(len(s.X), len(s.Y)) {
		x, y := s.X[i], s.Y[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			prevValid = false
			continue
		}

		x1, y1 := p.px(x), p.py(y)
		if prevValid {
			drawLine(img, p.area, x0, y0, x1, y1, c)
		} else {
			drawLine(img, p.area, x1, y1, x1, y1, c)
		}
		x0, y0, prevValid = x1, y1, true
	}
}

// drawLine draws a lineWidth wide segment clipped to area (Bresenham).
func drawLine(img *image.RGBA, area image.Rectangle, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	e := dx + dy
	for {
		for ox := 0; ox < lineWidth; ox++ {
			for oy := 0; oy < lineWidth; oy++ {
				if pt := image.Pt(x0+ox, y0+oy); pt.In(area) {
					img.Set(pt.X, pt.Y, c)
				}
			}
		}
		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Helper functions

// niceStep returns a 1, 2 or 5 times power of ten step that splits range_
// into about desiredSteps intervals.
func niceStep(range_ float64, desiredSteps float64) float64 {
	if range_ <= 0 || desiredSteps < 1 {
		return math.Max(range_, 1)
	}

	target := range_ / desiredSteps
	magnitude := math.Pow(10, math.Floor(math.Log10(target)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * magnitude; step >= target {
			return step
		}
	}
	return 10 * magnitude
}

func ticks(lo, hi, step float64) []float64 {
	var out []float64
	first := math.Ceil(lo/step - 1e-9)
	for i := 0.0; (first+i)*step <= hi+step*1e-9; i++ {
		v := (first + i) * step
		if v == 0 {
			v = 0 // no "-0" labels
		}
		out = append(out, v)
	}
	return out
}

func formatTick(v, step float64) string {
	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
	}
	return humanize.CommafWithDigits(v, decimals)
}
