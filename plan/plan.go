// Package plan решает, какие контуры и проходы передать внешнему кодеру
// заданий. Само командное кодирование (Graphtec/Silhouette), оптимизация
// порядка резов и слияние мелкой геометрии остаются внешними участниками.
package plan

import (
	"errors"

	"github.com/iwtcode/graphtecAdapter/models"
)

// Segment — отрезок реза (x1, y1, x2, y2) в режиме построчного вывода.
type Segment [4]float64

// Encoder — внешний кодер заданий. Планировщик управляет им командами,
// не зная формата вывода.
type Encoder interface {
	Start() error
	SetOffset(offset [2]float64, matrix [4]float64) error
	SetSpeedForce(speed, force float64) error
	Line(x1, y1, x2, y2 float64) error
	ClosedPath(points []models.Point) error
	End() error
}

// Optimizer — внешний оптимизатор порядка резов; принимает контуры и
// возвращает упорядоченные отрезки.
type Optimizer func(strokes []models.Stroke, border [2]float64) []Segment

// Merger — внешнее слияние мелкой геометрии по пороговым значениям.
type Merger func(strokes []models.Stroke, xThresh, yThresh float64) []models.Stroke

// Params задает параметры планирования задания.
type Params struct {
	Offset [2]float64
	Border [2]float64
	Matrix [4]float64

	// Проходы: i-й проход использует Speeds[i] и Forces[i].
	// Число проходов — минимум из длин двух срезов.
	Speeds []float64
	Forces []float64

	Merge          bool
	MergeThreshold [2]float64

	// CutMode 0 — оптимизированные отрезки, иначе — замкнутые контуры.
	CutMode int

	Optimize  Optimizer
	MergeFunc Merger
}

// ErrNoPasses возвращается, когда не задано ни одной пары скорость/усилие.
var ErrNoPasses = errors.New("no speed/force passes configured")

// MaxExtent возвращает максимальные координаты по всем контурам.
func MaxExtent(strokes []models.Stroke) (maxX, maxY float64) {
	for _, s := range strokes {
		for _, pt := range s {
			if pt.X > maxX {
				maxX = pt.X
			}
			if pt.Y > maxY {
				maxY = pt.Y
			}
		}
	}
	return maxX, maxY
}

// BorderPath строит прямоугольную рамку вокруг габаритов платы с отступом.
func BorderPath(maxX, maxY float64, border [2]float64) []models.Point {
	return []models.Point{
		{X: -border[0], Y: -border[1]},
		{X: maxX + border[0], Y: -border[1]},
		{X: maxX + border[0], Y: maxY + border[1]},
		{X: -border[0], Y: maxY + border[1]},
	}
}

// Plan прогоняет контуры через слияние и оптимизацию и выдает кодеру полное
// задание: заголовок, смещение с матрицей, затем по одному обходу всей
// геометрии на каждую пару (скорость, усилие), с рамкой в конце каждого
// прохода, если она задана.
func Plan(strokes []models.Stroke, p Params, enc Encoder) error {
	passes := len(p.Speeds)
	if len(p.Forces) < passes {
		passes = len(p.Forces)
	}
	if passes == 0 {
		return ErrNoPasses
	}

	if p.Merge && p.MergeFunc != nil {
		strokes = p.MergeFunc(strokes, p.MergeThreshold[0], p.MergeThreshold[1])
	}

	maxX, maxY := MaxExtent(strokes)
	borderPath := BorderPath(maxX, maxY, p.Border)
	hasBorder := p.Border[0] != 0 || p.Border[1] != 0

	if err := enc.Start(); err != nil {
		return err
	}
	offset := [2]float64{
		p.Offset[0] + p.Border[0] + 0.5,
		p.Offset[1] + p.Border[1] + 0.5,
	}
	if err := enc.SetOffset(offset, p.Matrix); err != nil {
		return err
	}

	if p.CutMode == 0 {
		lines := optimize(p.Optimize, strokes, p.Border)
		for i := 0; i < passes; i++ {
			if err := enc.SetSpeedForce(p.Speeds[i], p.Forces[i]); err != nil {
				return err
			}
			for _, l := range lines {
				if err := enc.Line(l[0], l[1], l[2], l[3]); err != nil {
					return err
				}
			}
			if hasBorder {
				if err := enc.ClosedPath(borderPath); err != nil {
					return err
				}
			}
		}
	} else {
		for i := 0; i < passes; i++ {
			if err := enc.SetSpeedForce(p.Speeds[i], p.Forces[i]); err != nil {
				return err
			}
			for _, s := range strokes {
				if err := enc.ClosedPath(s); err != nil {
					return err
				}
			}
			if hasBorder {
				if err := enc.ClosedPath(borderPath); err != nil {
					return err
				}
			}
		}
	}

	return enc.End()
}

// optimize применяет внешний оптимизатор, а при его отсутствии разворачивает
// контуры в отрезки в исходном порядке.
func optimize(fn Optimizer, strokes []models.Stroke, border [2]float64) []Segment {
	if fn != nil {
		return fn(strokes, border)
	}
	var lines []Segment
	for _, s := range strokes {
		for i := 1; i < len(s); i++ {
			lines = append(lines, Segment{s[i-1].X, s[i-1].Y, s[i].X, s[i].Y})
		}
	}
	return lines
}
