package kernel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"station/internal/pkg/errs"
	"station/internal/pkg/guard"
)

const (
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
)

// ErrCoordinateIsNotConstructed is returned when a zero-value Coordinate is used.
var ErrCoordinateIsNotConstructed = errs.NewValueIsRequiredError(
	"coordinate must be created via NewCoordinate or ParseCoordinate")

// Coordinate is a geographic point in decimal degrees stored as (longitude, latitude),
// the order used by the point columns and the dashboard map.
//
// Coordinate is an immutable value object; optional points (an order without a route
// yet, a truck without GPS) are modelled as *Coordinate.
//
// Example:
//
//	depot, err := kernel.NewCoordinate(3.3792, 6.5244)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(depot.Format()) // (3.3792,6.5244)
type Coordinate struct { //nolint:recvcheck //using for validation
	lng   float64
	lat   float64
	guard guard.ConstructorGuard
}

// NewCoordinate creates a Coordinate after checking that both components are finite
// and within the valid longitude/latitude ranges.
func NewCoordinate(lng, lat float64) (Coordinate, error) {
	c := Coordinate{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setLng(lng), c.setLat(lat)); err != nil {
		return Coordinate{}, err
	}

	return c, nil
}

// ParseCoordinate converts a point received from storage or transport into a Coordinate.
//
// Accepted shapes:
//   - a two element numeric array or slice ([2]float64, []float64, []any, ...)
//   - an object exposing "x" and "y" (map or struct), where each component is a number
//     or a numeric string; a component that does not parse counts as 0
//   - the canonical point literal "(lng,lat)" as string or []byte
//   - JSON text ([]byte or json.RawMessage) holding one of the shapes above
//
// Pairs are passed through without the longitude/latitude range check; callers that
// accept user input should go through NewCoordinate. Any other input, including nil,
// empty objects and non-finite values, reports false.
// ParseCoordinate never panics: malformed data is treated as an absent point.
func ParseCoordinate(raw any) (Coordinate, bool) {
	lng, lat, ok := extractPair(raw)
	if !ok || !isFinite(lng) || !isFinite(lat) {
		return Coordinate{}, false
	}

	return Coordinate{lng: lng, lat: lat, guard: guard.NewConstructorGuard()}, true
}

// FormatCoordinate returns the canonical "(lng,lat)" literal used for persistence.
func FormatCoordinate(c Coordinate) string {
	return "(" + formatFloat(c.lng) + "," + formatFloat(c.lat) + ")"
}

// ProgressAlongRoute estimates how far current is along the straight line from origin to
// destination, as a percentage in [0, 100].
//
// Distances are planar Euclidean distances in the (lng, lat) plane. There is no geodesic
// correction; delivery routes are short and local, so the approximation is accepted.
// It returns 0 when any point is absent or origin and destination coincide.
func ProgressAlongRoute(origin, destination, current *Coordinate) float64 {
	if origin == nil || destination == nil || current == nil {
		return 0
	}

	totalDist := origin.PlanarDistance(*destination)
	if totalDist == 0 {
		return 0
	}

	progressDist := origin.PlanarDistance(*current)
	ratio := progressDist / totalDist
	return 100 * math.Max(0, math.Min(ratio, 1))
}

// Validate checks that the coordinate was created through a constructor.
func (c Coordinate) Validate() error {
	return c.guard.Validate(ErrCoordinateIsNotConstructed)
}

func (c Coordinate) Lng() float64 {
	return c.lng
}

func (c Coordinate) Lat() float64 {
	return c.lat
}

// Format returns the "(lng,lat)" literal.
func (c Coordinate) Format() string {
	return FormatCoordinate(c)
}

func (c Coordinate) String() string {
	return c.Format()
}

// IsEqual compares both components exactly.
func (c Coordinate) IsEqual(other Coordinate) bool {
	return c.lng == other.lng && c.lat == other.lat
}

// PlanarDistance is the Euclidean distance in degrees between c and other.
func (c Coordinate) PlanarDistance(other Coordinate) float64 {
	return math.Hypot(other.lng-c.lng, other.lat-c.lat)
}

// Remaining returns the vector (dLng, dLat) still to travel from c to target.
func (c Coordinate) Remaining(target Coordinate) (float64, float64) {
	return target.lng - c.lng, target.lat - c.lat
}

// IsWithin reports whether both components of the remaining vector to target are
// within epsilon degrees.
func (c Coordinate) IsWithin(target Coordinate, epsilon float64) bool {
	dLng, dLat := c.Remaining(target)
	return math.Abs(dLng) <= epsilon && math.Abs(dLat) <= epsilon
}

// MoveToward returns the point fraction of the way from c to target.
// fraction must be in (0, 1].
func (c Coordinate) MoveToward(target Coordinate, fraction float64) (Coordinate, error) {
	if err := errors.Join(c.Validate(), target.Validate()); err != nil {
		return Coordinate{}, err
	}
	if !(fraction > 0 && fraction <= 1) {
		return Coordinate{}, errs.NewValueIsOutOfRangeError("fraction", fraction, 0, 1)
	}

	dLng, dLat := c.Remaining(target)
	return NewCoordinate(c.lng+dLng*fraction, c.lat+dLat*fraction)
}

// MarshalJSON encodes the coordinate as a [lng, lat] pair.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.lng, c.lat})
}

// UnmarshalJSON accepts every shape understood by ParseCoordinate and rejects
// components outside the valid ranges.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	parsed, ok := ParseCoordinate(json.RawMessage(data))
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("coordinate", fmt.Errorf("cannot parse %s", data))
	}

	checked, err := NewCoordinate(parsed.lng, parsed.lat)
	if err != nil {
		return err
	}
	*c = checked
	return nil
}

func (c *Coordinate) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, MinLongitude, MaxLongitude)
	}
	c.lng = lng
	return nil
}

func (c *Coordinate) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}
	c.lat = lat
	return nil
}

func extractPair(raw any) (float64, float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, 0, false
	case Coordinate:
		return v.lng, v.lat, v.Validate() == nil
	case *Coordinate:
		if v == nil {
			return 0, 0, false
		}
		return v.lng, v.lat, v.Validate() == nil
	case string:
		return parseLiteral(v)
	case json.RawMessage:
		return extractFromText([]byte(v))
	case []byte:
		return extractFromText(v)
	case map[string]any:
		return extractXY(v["x"], v["y"], hasKeys(v))
	case map[string]float64:
		x, okX := v["x"]
		y, okY := v["y"]
		return x, y, okX && okY
	case map[string]string:
		x, okX := v["x"]
		y, okY := v["y"]
		return extractXY(x, y, okX && okY)
	}

	return extractReflect(reflect.ValueOf(raw))
}

// extractReflect handles arrays/slices of any numeric element type and structs with
// X and Y fields.
func extractReflect(rv reflect.Value) (float64, float64, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return 0, 0, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() { //nolint:exhaustive // remaining kinds are not points
	case reflect.Array, reflect.Slice:
		if rv.Len() != 2 {
			return 0, 0, false
		}
		lng, okLng := toFloat(rv.Index(0).Interface())
		lat, okLat := toFloat(rv.Index(1).Interface())
		return lng, lat, okLng && okLat
	case reflect.Struct:
		x := rv.FieldByName("X")
		y := rv.FieldByName("Y")
		if !x.IsValid() || !y.IsValid() || !x.CanInterface() || !y.CanInterface() {
			return 0, 0, false
		}
		return extractXY(x.Interface(), y.Interface(), true)
	default:
		return 0, 0, false
	}
}

func extractFromText(data []byte) (float64, float64, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0, 0, false
	}

	switch trimmed[0] {
	case '(':
		return parseLiteral(string(trimmed))
	case '[', '{':
		var decoded any
		if err := json.Unmarshal(trimmed, &decoded); err != nil {
			return 0, 0, false
		}
		return extractPair(decoded)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, 0, false
		}
		return parseLiteral(s)
	default:
		return 0, 0, false
	}
}

func extractXY(x, y any, present bool) (float64, float64, bool) {
	if !present {
		return 0, 0, false
	}
	lng, ok := toFloat(x)
	if !ok {
		lng = 0
	}
	lat, ok := toFloat(y)
	if !ok {
		lat = 0
	}
	return lng, lat, true
}

func hasKeys(m map[string]any) bool {
	_, okX := m["x"]
	_, okY := m["y"]
	return okX && okY
}

func parseLiteral(s string) (float64, float64, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return 0, 0, false
	}

	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		return 0, 0, false
	}

	lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLng != nil || errLat != nil {
		return 0, 0, false
	}
	return lng, lat, true
}

func toFloat(v any) (float64, bool) {
	f, ok := numeric(v)
	return f, ok && isFinite(f)
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
