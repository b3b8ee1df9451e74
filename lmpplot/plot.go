//Package lmpplot renders the parsed and averaged LAMMPS data to image
//files. It is a presentation collaborator: the readers and the statistics
//engine never depend on it, they only hand it finished vectors. All style
//goes through an explicit Config value.
package lmpplot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/andersle/lammps-tools/stats"
)

func points(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(y))
	for i := range pts {
		if x == nil {
			pts[i].X = float64(i)
		} else {
			pts[i].X = x[i]
		}
		pts[i].Y = y[i]
	}
	return pts
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}

func (cfg Config) size() (vg.Length, vg.Length) {
	return vg.Length(cfg.Width) * vg.Centimeter, vg.Length(cfg.Height) * vg.Centimeter
}

// addEnvelope draws y+-err as a pair of dashed lines around the mean.
// Envelopes with non-finite values (a key with fewer than two observations
// has infinite variance) are skipped silently.
func addEnvelope(p *plot.Plot, cfg Config, x, y, err []float64) error {
	if err == nil || !allFinite(err) {
		return nil
	}
	for _, sign := range []float64{-1, 1} {
		env := make([]float64, len(y))
		for i := range y {
			env[i] = y[i] + sign*err[i]
		}
		l, lerr := plotter.NewLine(points(x, env))
		if lerr != nil {
			return lerr
		}
		l.LineStyle.Width = vg.Points(cfg.LineWidth / 2)
		l.LineStyle.Color = plotutil.Color(1)
		if cfg.DashedErr {
			l.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		}
		p.Add(l)
	}
	return nil
}

// Profiles plots the averaged profile of every requested key against its
// bin number, one file per key named <stem>-<key>.png, with the sample
// standard deviation as a dashed envelope. It returns the files written.
func Profiles(cfg Config, acc *stats.Accumulator, keys []string, stem string) ([]string, error) {
	var files []string
	for _, key := range keys {
		mean := acc.Mean(key)
		if mean == nil {
			return files, fmt.Errorf("lmpplot: unknown key %q", key)
		}
		p := plot.New()
		p.X.Label.Text = "Bin no."
		p.Y.Label.Text = key
		p.Add(plotter.NewGrid())
		if err := addEnvelope(p, cfg, nil, mean, acc.Std(key)); err != nil {
			return files, err
		}
		l, err := plotter.NewLine(points(nil, mean))
		if err != nil {
			return files, err
		}
		l.LineStyle.Width = vg.Points(cfg.LineWidth)
		l.LineStyle.Color = plotutil.Color(0)
		p.Add(l)
		name := fmt.Sprintf("%s-%s.png", stem, key)
		w, h := cfg.size()
		if err := p.Save(w, h, name); err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}

// XY plots one variable against another, with an optional error envelope
// on y.
func XY(cfg Config, x, y, yerr []float64, xlabel, ylabel, name string) error {
	p := plot.New()
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	if err := addEnvelope(p, cfg, x, y, yerr); err != nil {
		return err
	}
	l, err := plotter.NewLine(points(x, y))
	if err != nil {
		return err
	}
	l.LineStyle.Width = vg.Points(cfg.LineWidth)
	l.LineStyle.Color = plotutil.Color(0)
	s, err := plotter.NewScatter(points(x, y))
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = plotutil.Color(0)
	p.Add(l, s)
	w, h := cfg.size()
	return p.Save(w, h, name)
}

// Series overlays time series from a thermo run against a common x axis,
// in the given key order, optionally with a dashed rule at each series'
// mean the way one eyeballs equilibration.
func Series(cfg Config, x []float64, series map[string][]float64, order []string, withMean bool, name string) error {
	p := plot.New()
	p.X.Label.Text = "step"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	for i, key := range order {
		y, ok := series[key]
		if !ok {
			return fmt.Errorf("lmpplot: unknown key %q", key)
		}
		l, err := plotter.NewLine(points(x, y))
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(cfg.LineWidth)
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(key, l)
		if withMean && len(x) > 1 {
			m := stat.Mean(y, nil)
			rule, err := plotter.NewLine(points([]float64{x[0], x[len(x)-1]}, []float64{m, m}))
			if err != nil {
				return err
			}
			rule.LineStyle.Width = vg.Points(cfg.LineWidth / 2)
			rule.LineStyle.Color = plotutil.Color(i)
			rule.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(4)}
			p.Add(rule)
		}
	}
	w, h := cfg.size()
	return p.Save(w, h, name)
}
