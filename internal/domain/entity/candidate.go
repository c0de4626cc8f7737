package entity

import "math"

// Point целочисленная точка в пикселях
type Point struct {
	X int
	Y int
}

// DistanceTo возвращает евклидово расстояние до другой точки
func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(float64(p.X-o.X), float64(p.Y-o.Y))
}

// Box прямоугольная рамка в пикселях
type Box struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина рамки
	Height int // высота рамки
}

// Center возвращает центр рамки (с отбрасыванием дробной части)
func (b Box) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Shift сдвигает рамку по вертикали на dy пикселей.
func (b Box) Shift(dy int) Box {
	b.Y += dy
	return b
}

// Candidate представляет кандидата в дефект на одном кадре
type Candidate struct {
	X             int     // координата X левого верхнего угла
	Y             int     // координата Y левого верхнего угла
	Width         int     // ширина рамки в пикселях
	Height        int     // высота рамки в пикселях
	Area          float64 // площадь контура в пикселях
	MeanIntensity float64 // средняя яркость внутри рамки
}

// Box возвращает рамку кандидата
func (c Candidate) Box() Box {
	return Box{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// Center возвращает координаты центра кандидата
func (c Candidate) Center() Point {
	return c.Box().Center()
}

// Shift переводит кандидата из координат ROI в координаты кадра.
func (c Candidate) Shift(dy int) Candidate {
	c.Y += dy
	return c
}

// Validate проверяет, что кандидат можно передать трекеру.
func (c Candidate) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return NewInputError("candidate has negative size %dx%d", c.Width, c.Height)
	}
	if math.IsNaN(c.Area) || math.IsInf(c.Area, 0) || c.Area < 0 {
		return NewInputError("candidate has invalid area %v", c.Area)
	}
	if math.IsNaN(c.MeanIntensity) || math.IsInf(c.MeanIntensity, 0) {
		return NewInputError("candidate has invalid mean intensity %v", c.MeanIntensity)
	}
	return nil
}
