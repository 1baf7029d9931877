package gallery

import "math"

// parallelEpsilon is the determinant magnitude below which a ray and a segment are treated as parallel
const parallelEpsilon = 0.000001

// Point is a position on the gallery floor
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - o
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// DistanceTo returns the euclidean distance between two points
func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Segment is an impenetrable wall between two points
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Length returns the wall length
func (s Segment) Length() float64 {
	return s.A.DistanceTo(s.B)
}

// Bounds is an axis-aligned bounding box
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoundsOf returns the bounding box of a vertex list
func BoundsOf(vertices []Point) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: vertices[0].X, MaxX: vertices[0].X,
		MinY: vertices[0].Y, MaxY: vertices[0].Y,
	}
	for _, v := range vertices[1:] {
		b.MinX = math.Min(b.MinX, v.X)
		b.MaxX = math.Max(b.MaxX, v.X)
		b.MinY = math.Min(b.MinY, v.Y)
		b.MaxY = math.Max(b.MaxY, v.Y)
	}
	return b
}

// Clamp keeps p inside the box shrunk by inset on every side
func (b Bounds) Clamp(p Point, inset float64) Point {
	return Point{
		X: math.Max(b.MinX+inset, math.Min(b.MaxX-inset, p.X)),
		Y: math.Max(b.MinY+inset, math.Min(b.MaxY-inset, p.Y)),
	}
}

// rayHit is the result of a single ray/segment test
type rayHit struct {
	hit   bool
	dist  float64
	point Point
}

// raySegmentIntersection solves origin + dir*t1 = segStart + (segEnd-segStart)*t2.
// A hit needs t1 >= 0 and t2 within [0, 1].
func raySegmentIntersection(origin, dir, segStart, segEnd Point) rayHit {
	v1 := origin.Sub(segStart)
	v2 := segEnd.Sub(segStart)
	v3 := Point{X: -dir.Y, Y: dir.X}

	dot := v2.X*v3.X + v2.Y*v3.Y
	if math.Abs(dot) < parallelEpsilon {
		return rayHit{dist: math.Inf(1)}
	}

	t1 := (v2.X*v1.Y - v2.Y*v1.X) / dot
	t2 := (v1.X*v3.X + v1.Y*v3.Y) / dot

	if t1 >= 0 && t2 >= 0 && t2 <= 1 {
		return rayHit{
			hit:  true,
			dist: t1,
			point: Point{
				X: origin.X + dir.X*t1,
				Y: origin.Y + dir.Y*t1,
			},
		}
	}
	return rayHit{dist: math.Inf(1)}
}

// CastRay returns the nearest wall hit along angle, or the point at maxDist if nothing is hit
func CastRay(origin Point, angle float64, walls []Segment, maxDist float64) Point {
	dir := Point{X: math.Cos(angle), Y: math.Sin(angle)}
	closestDist := maxDist
	closest := Point{
		X: origin.X + dir.X*maxDist,
		Y: origin.Y + dir.Y*maxDist,
	}

	for _, wall := range walls {
		h := raySegmentIntersection(origin, dir, wall.A, wall.B)
		if h.hit && h.dist < closestDist {
			closestDist = h.dist
			closest = h.point
		}
	}
	return closest
}

// PointInPolygon is the even-odd crossing test. The closing edge is walked
// by wrapping to the previous index, so closed and open vertex lists both work.
// Points exactly on an edge may land on either side.
func PointInPolygon(p Point, polygon []Point) bool {
	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if (yi > p.Y) != (yj > p.Y) &&
			p.X < (xj-xi)*(p.Y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
