package asset

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownArrayType is returned for a field whose type names no known
// typed array kind.
var ErrUnknownArrayType = errors.New("asset: unknown array type")

// ErrBadComponents is returned when a field's payload does not split evenly
// into elements.
var ErrBadComponents = errors.New("asset: bad numComponents")

// ArrayType names the numeric kind of a field's payload.
type ArrayType string

const (
	Int8Array         ArrayType = "Int8Array"
	Uint8Array        ArrayType = "Uint8Array"
	Uint8ClampedArray ArrayType = "Uint8ClampedArray"
	Int16Array        ArrayType = "Int16Array"
	Uint16Array       ArrayType = "Uint16Array"
	Int32Array        ArrayType = "Int32Array"
	Uint32Array       ArrayType = "Uint32Array"
	Float32Array      ArrayType = "Float32Array"
	Float64Array      ArrayType = "Float64Array"
)

// Field is one vertex attribute: a flat payload of Len()*NumComponents
// values, already converted to Type.
type Field struct {
	NumComponents int       `json:"numComponents"`
	Type          ArrayType `json:"type"`
	Data          []float64 `json:"data"`
}

// Len returns the number of elements.
func (f Field) Len() int {
	if f.NumComponents == 0 {
		return 0
	}
	return len(f.Data) / f.NumComponents
}

// Float32s returns the payload as float32 values.
func (f Field) Float32s() []float32 {
	out := make([]float32, len(f.Data))
	for i, v := range f.Data {
		out[i] = float32(v)
	}
	return out
}

// Ints returns the payload as integers.
func (f Field) Ints() []int {
	out := make([]int, len(f.Data))
	for i, v := range f.Data {
		out[i] = int(v)
	}
	return out
}

// guessComponents picks a component count for fields that omit it.
func guessComponents(name string) int {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "coord"):
		return 2
	case strings.Contains(lower, "color"):
		return 4
	}
	return 3
}

// normalize converts the raw payload to the declared type in place and checks
// the component count.
func (f *Field) normalize(name string) error {
	if f.NumComponents == 0 {
		f.NumComponents = guessComponents(name)
	}
	if f.NumComponents < 0 {
		return fmt.Errorf("%w: field %q has %d", ErrBadComponents, name, f.NumComponents)
	}
	if len(f.Data)%f.NumComponents != 0 {
		return fmt.Errorf("%w: field %q has %d values for %d components",
			ErrBadComponents, name, len(f.Data), f.NumComponents)
	}
	conv, ok := converters[f.Type]
	if !ok {
		return fmt.Errorf("%w: field %q: %q", ErrUnknownArrayType, name, f.Type)
	}
	for i, v := range f.Data {
		f.Data[i] = conv(v)
	}
	return nil
}

var converters = map[ArrayType]func(float64) float64{
	Int8Array:         func(v float64) float64 { return float64(int8(wrap(v, 8))) },
	Uint8Array:        func(v float64) float64 { return float64(uint8(wrap(v, 8))) },
	Uint8ClampedArray: clampUint8,
	Int16Array:        func(v float64) float64 { return float64(int16(wrap(v, 16))) },
	Uint16Array:       func(v float64) float64 { return float64(uint16(wrap(v, 16))) },
	Int32Array:        func(v float64) float64 { return float64(int32(wrap(v, 32))) },
	Uint32Array:       func(v float64) float64 { return float64(uint32(wrap(v, 32))) },
	Float32Array:      func(v float64) float64 { return float64(float32(v)) },
	Float64Array:      func(v float64) float64 { return v },
}

// wrap truncates toward zero and reduces modulo 2^bits, the way typed array
// stores do. Non-finite values become 0.
func wrap(v float64, bits uint) uint64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(v), float64(uint64(1)<<bits))
	if m < 0 {
		m += float64(uint64(1) << bits)
	}
	return uint64(m)
}

func clampUint8(v float64) float64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return math.RoundToEven(v)
}
