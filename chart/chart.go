// Package chart renders the correlation heatmap and the pairwise scatter
// grid as PNG images.
package chart

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"repoanalysis/analysis"
	"repoanalysis/logger"
)

const (
	heatmapWidth  = 8 * vg.Inch
	heatmapHeight = 7 * vg.Inch
	colorBarWidth = 1 * vg.Inch
	paletteColors = 255

	pairCell        = 1.6 * vg.Inch
	pairTitleHeight = 0.6 * vg.Inch
)

// Renderer draws both charts of an analysis result.
type Renderer struct {
	HeatmapPath  string
	PairGridPath string
}

// NewRenderer returns a Renderer writing to the given paths.
func NewRenderer(heatmapPath, pairGridPath string) *Renderer {
	return &Renderer{HeatmapPath: heatmapPath, PairGridPath: pairGridPath}
}

// Render writes the heatmap and the pair grid.
func (r *Renderer) Render(ctx context.Context, res *analysis.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := Heatmap(res.Correlation, r.HeatmapPath); err != nil {
		return err
	}
	logger.Info("Rendered correlation heatmap", zap.String("path", r.HeatmapPath))

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := PairGrid(res.Frame, r.PairGridPath); err != nil {
		return err
	}
	logger.Info("Rendered scatterplot matrix", zap.String("path", r.PairGridPath))
	return nil
}

// correlationGrid adapts a correlation matrix to plotter.GridXYZ with the
// first column at the origin. Its range is fixed to [-1, 1].
type correlationGrid struct {
	m analysis.CorrelationMatrix
}

func (g correlationGrid) Dims() (c, r int) { return g.m.Size(), g.m.Size() }
func (g correlationGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g correlationGrid) X(c int) float64   { return float64(c) }
func (g correlationGrid) Y(r int) float64   { return float64(r) }
func (g correlationGrid) Min() float64      { return -1 }
func (g correlationGrid) Max() float64      { return 1 }

// Heatmap renders corr with labelled axes and a colour bar spanning [-1, 1].
func Heatmap(corr analysis.CorrelationMatrix, path string) error {
	if corr.Size() == 0 {
		return fmt.Errorf("%w: empty correlation matrix", analysis.ErrEmptyTable)
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	p := plot.New()
	p.Title.Text = "Correlation Matrix"

	h := plotter.NewHeatMap(correlationGrid{m: corr}, cm.Palette(paletteColors))
	h.Min, h.Max = -1, 1
	h.NaN = color.Gray{Y: 0xcc}
	p.Add(h)

	ticks := labelTicks(corr.Columns)
	p.X.Tick.Marker = ticks
	p.Y.Tick.Marker = ticks
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	bar := plot.New()
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: paletteColors})
	bar.HideX()
	bar.Y.Padding = 0

	img := vgimg.New(heatmapWidth, heatmapHeight)
	dc := draw.New(img)
	p.Draw(draw.Crop(dc, 0, -colorBarWidth, 0, 0))
	bar.Draw(draw.Crop(dc, heatmapWidth-colorBarWidth, 0, 0, 0))

	return savePNG(img, path)
}

// PairGrid renders a scatter plot for every pair of columns of frame, with
// a kernel density estimate of each column on the diagonal.
func PairGrid(frame *analysis.Frame, path string) error {
	cols := frame.Columns()
	n := len(cols)
	if n == 0 || frame.Len() == 0 {
		return fmt.Errorf("%w: nothing to plot", analysis.ErrEmptyTable)
	}

	plots := make([][]*plot.Plot, n)
	for r := range plots {
		plots[r] = make([]*plot.Plot, n)
		for c := range plots[r] {
			p, err := pairCellPlot(frame, cols[c], cols[r], r == c)
			if err != nil {
				return err
			}
			if r == n-1 {
				p.X.Label.Text = cols[c]
			}
			if c == 0 {
				p.Y.Label.Text = cols[r]
			}
			plots[r][c] = p
		}
	}

	size := vg.Length(n) * pairCell
	img := vgimg.New(size, size+pairTitleHeight)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: n,
		Cols: n,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, draw.Crop(dc, 0, 0, 0, -pairTitleHeight))
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	title := plot.New().Title.TextStyle
	title.Font.Size = vg.Points(20)
	title.XAlign = text.XCenter
	title.YAlign = text.YTop
	dc.FillText(title, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Millimeter}, "Scatterplot Matrix")

	return savePNG(img, path)
}

func pairCellPlot(frame *analysis.Frame, xName, yName string, diagonal bool) (*plot.Plot, error) {
	p := plot.New()
	xs := frame.Column(xName)

	if diagonal {
		line, err := plotter.NewLine(kde(xs))
		if err != nil {
			return nil, fmt.Errorf("failed to plot density of %s: %w", xName, err)
		}
		line.FillColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x40}
		p.Add(line)
		return p, nil
	}

	ys := frame.Column(yName)
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to plot %s against %s: %w", yName, xName, err)
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(1.5)
	sc.GlyphStyle.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	p.Add(sc)
	return p, nil
}

func labelTicks(names []string) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	return ticks
}

func savePNG(img *vgimg.Canvas, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
