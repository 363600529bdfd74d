package geom

import "fmt"

// Kind names a transformation variant.
type Kind string

const (
	KindTranslation Kind = "translation"
	KindReflection  Kind = "reflection"
	KindRotation    Kind = "rotation"
	KindDilation    Kind = "dilation"
)

// Transformation is one of [Translation], [Reflection], [Rotation] or
// [Dilation]. The set is closed: the unexported method keeps other packages
// from adding variants that [Image] does not handle.
type Transformation interface {
	Kind() Kind
	transformation()
}

// Translation moves every point by Vector.
type Translation struct {
	Vector Point `json:"vector"`
}

// Reflection mirrors points across Line.
type Reflection struct {
	Line Line `json:"line"`
}

// Rotation turns points about Center by AngleDegrees (counter-clockwise).
type Rotation struct {
	Center       Point   `json:"center"`
	AngleDegrees float64 `json:"angleDegrees"`
}

// Dilation scales points about Center by ScaleFactor.
type Dilation struct {
	Center      Point   `json:"center"`
	ScaleFactor float64 `json:"scaleFactor"`
}

func (Translation) Kind() Kind { return KindTranslation }
func (Reflection) Kind() Kind  { return KindReflection }
func (Rotation) Kind() Kind    { return KindRotation }
func (Dilation) Kind() Kind    { return KindDilation }

func (Translation) transformation() {}
func (Reflection) transformation()  {}
func (Rotation) transformation()    {}
func (Dilation) transformation()    {}

// Validate reports input errors that make t unusable.
func Validate(t Transformation) error {
	if t == nil {
		return fmt.Errorf("transformation is required")
	}
	if r, ok := t.(Reflection); ok && r.Line.From == r.Line.To {
		return &DegenerateAxisError{From: r.Line.From, To: r.Line.To}
	}
	return nil
}

// Apply maps a single point through t.
func Apply(t Transformation, p Point) (Point, error) {
	switch t := t.(type) {
	case Translation:
		return Translate(p, t.Vector), nil
	case Reflection:
		return Reflect(p, t.Line.From, t.Line.To)
	case Rotation:
		return Rotate(p, t.Center, t.AngleDegrees), nil
	case Dilation:
		return Dilate(p, t.Center, t.ScaleFactor), nil
	default:
		return Point{}, fmt.Errorf("unsupported transformation %T", t)
	}
}

// Image maps every point in pts through t, returning a new slice.
func Image(t Transformation, pts []Point) ([]Point, error) {
	out := make([]Point, len(pts))
	for i, p := range pts {
		q, err := Apply(t, p)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}

// Aids returns the points a diagram must keep visible to explain t: the
// centre of a rotation or dilation and the endpoints of a reflection line.
// Translations have none.
func Aids(t Transformation) []Point {
	switch t := t.(type) {
	case Reflection:
		return []Point{t.Line.From, t.Line.To}
	case Rotation:
		return []Point{t.Center}
	case Dilation:
		return []Point{t.Center}
	default:
		return nil
	}
}
