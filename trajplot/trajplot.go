/*Package trajplot renders scalar per-frame trajectory properties as
line-and-point plots. It consumes the FrameMeta records of a metadata
extraction pass, so producing a plot never decodes atomic coordinates.
Plots are written as PNG files.*/
package trajplot

import (
	"fmt"
	"slices"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	traj "github.com/atomvista/gotraj"
)

// Series extracts the (frame, value) points of one scalar property,
// skipping records that do not carry it. Points keep the frame order of
// meta.
func Series(meta []traj.FrameMeta, property string) plotter.XYs {
	pts := make(plotter.XYs, 0, len(meta))
	for _, m := range meta {
		v, ok := m.Properties[property]
		if !ok {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(m.FrameNumber), Y: v})
	}
	return pts
}

// Properties returns the sorted union of scalar property names present
// in meta.
func Properties(meta []traj.FrameMeta) []string {
	seen := make(map[string]bool)
	for _, m := range meta {
		for k := range m.Properties {
			seen[k] = true
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func basicPlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

/*PlotProperty plots one scalar property against frame number and saves the
result to plotname.png, so the extension must not be included in plotname.
Frames listed in tag (maximum 4) are highlighted with distinct glyphs.
Returns an error when no record in meta carries the property.*/
func PlotProperty(meta []traj.FrameMeta, property string, tag []int, title, plotname string) error {
	pts := Series(meta, property)
	if len(pts) == 0 {
		return fmt.Errorf("PlotProperty: no values for property %q", property)
	}
	p := basicPlot(title, property)
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Width = vg.Points(1)
	l.LineStyle.Color = plotutil.Color(0)
	p.Add(l)
	plain := make(plotter.XYs, 0, len(pts))
	var tagged int
	for _, xy := range pts {
		if tag != nil && slices.Contains(tag, int(xy.X)) {
			s, err := plotter.NewScatter(plotter.XYs{xy})
			if err != nil {
				return err
			}
			//past four tags every further point gets the ring glyph
			s.GlyphStyle.Shape, _ = getShape(tagged)
			s.GlyphStyle.Color = plotutil.Color(1)
			tagged++
			p.Add(s)
			continue
		}
		plain = append(plain, xy)
	}
	if len(plain) > 0 {
		s, err := plotter.NewScatter(plain)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = plotutil.Color(0)
		p.Add(s)
	}
	return p.Save(4*vg.Inch, 4*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

/*PlotProperties plots several scalar properties on one shared pair of axes
and saves the result to plotname.png. Properties absent from every record
are left out; an error is returned only when none of them has any values.
Each series gets its own color and a legend entry.*/
func PlotProperties(meta []traj.FrameMeta, properties []string, title, plotname string) error {
	if len(properties) == 0 {
		return fmt.Errorf("PlotProperties: no properties given")
	}
	args := make([]interface{}, 0, 2*len(properties))
	for _, prop := range properties {
		pts := Series(meta, prop)
		if len(pts) == 0 {
			continue
		}
		args = append(args, prop, pts)
	}
	if len(args) == 0 {
		return fmt.Errorf("PlotProperties: no values for any of %v", properties)
	}
	p := basicPlot(title, "Value")
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return err
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

func getShape(tagged int) (draw.GlyphDrawer, error) {
	switch tagged {
	case 0:
		return draw.PyramidGlyph{}, nil
	case 1:
		return draw.CircleGlyph{}, nil
	case 2:
		return draw.SquareGlyph{}, nil
	case 3:
		return draw.CrossGlyph{}, nil
	default:
		return draw.RingGlyph{}, fmt.Errorf("only 4 distinct tag glyphs are available")
	}
}
