package mandel

import (
	"fmt"
	"math/rand/v2"
)

// DefaultPaletteSize is the number of entries in generated palettes.
const DefaultPaletteSize = 256

// RandomSeed seeds the random palette so every run shows the same colors.
const RandomSeed = 12345

// PaletteKind selects a palette generation strategy.
type PaletteKind int

const (
	// PaletteSmooth interpolates from blue to red.
	PaletteSmooth PaletteKind = iota
	// PaletteGrayscale ramps from black to white.
	PaletteGrayscale
	// PaletteRandom draws seeded random colors scaled by a rising intensity.
	PaletteRandom
	// PalettePolynomial is the (1-t)t^3 gradient: dark at both ends, bright
	// just outside the set.
	PalettePolynomial
)

var paletteNames = map[PaletteKind]string{
	PaletteSmooth:     "smooth",
	PaletteGrayscale:  "grayscale",
	PaletteRandom:     "random",
	PalettePolynomial: "polynomial",
}

// String returns the flag spelling of the palette kind.
func (k PaletteKind) String() string {
	if s, ok := paletteNames[k]; ok {
		return s
	}
	return fmt.Sprintf("PaletteKind(%d)", int(k))
}

// ParsePaletteKind parses a palette name as printed by String.
func ParsePaletteKind(s string) (PaletteKind, error) {
	for k, name := range paletteNames {
		if name == s {
			return k, nil
		}
	}
	if s == "gray" {
		return PaletteGrayscale, nil
	}
	return 0, &ParseError{Kind: "palette", Value: s}
}

// Palette maps escape counts to colors. It is immutable once generated and
// shared read-only by render workers.
type Palette []RGB

// NewPalette generates an n-entry palette of the given kind.
func NewPalette(kind PaletteKind, n int) (Palette, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: palette size %d", ErrInvalidConfig, n)
	}
	switch kind {
	case PaletteGrayscale:
		return GrayscalePalette(n), nil
	case PaletteRandom:
		return RandomPalette(n, RandomSeed), nil
	case PaletteSmooth:
		return GradientPalette(n, Blue, Red), nil
	case PalettePolynomial:
		return PolynomialPalette(n), nil
	}
	return nil, &ParseError{Kind: "palette", Value: kind.String()}
}

// ratio returns i/(n-1), or 0 for a single-entry palette.
func ratio(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func unit(x float64) float64 { return min(max(x, 0), 1) }

// GrayscalePalette ramps linearly from black to white.
func GrayscalePalette(n int) Palette {
	p := make(Palette, n)
	for i := range p {
		v := ratio(i, n)
		p[i] = RGB{v, v, v}
	}
	return p
}

// RandomPalette draws three uniform values per entry from a generator seeded
// with seed and scales them by 2i/(n-1). Components are clamped to [0, 1],
// so the upper half of the palette saturates.
func RandomPalette(n int, seed uint64) Palette {
	rng := rand.New(rand.NewPCG(seed, seed))
	p := make(Palette, n)
	for i := range p {
		intensity := 2 * ratio(i, n)
		p[i] = RGB{
			R: unit(rng.Float64() * intensity),
			G: unit(rng.Float64() * intensity),
			B: unit(rng.Float64() * intensity),
		}
	}
	return p
}

// GradientPalette interpolates linearly from start to end.
func GradientPalette(n int, start, end RGB) Palette {
	p := make(Palette, n)
	for i := range p {
		p[i] = start.Lerp(end, ratio(i, n))
	}
	return p
}

// PolynomialPalette samples r=9(1-t)t^3, g=15(1-t)t^3, b=8.5(1-t)t^3 at
// t = i/(n-1), clamped to [0, 1].
func PolynomialPalette(n int) Palette {
	p := make(Palette, n)
	for i := range p {
		t := ratio(i, n)
		k := (1 - t) * t * t * t
		p[i] = RGB{R: unit(9 * k), G: unit(15 * k), B: unit(8.5 * k)}
	}
	return p
}

// Index returns the palette entry for an escape count: count*(n-1)/maxIter,
// clamped to the palette. A non-positive maxIter selects the last entry.
func (p Palette) Index(count, maxIter int) int {
	n := len(p)
	if n == 0 {
		return 0
	}
	if maxIter <= 0 {
		return n - 1
	}
	return min(max(count*(n-1)/maxIter, 0), n-1)
}

// Lookup returns the color for an escape count. An empty palette yields
// black.
func (p Palette) Lookup(count, maxIter int) RGB {
	if len(p) == 0 {
		return Black
	}
	return p[p.Index(count, maxIter)]
}

// First returns the first entry, or black for an empty palette.
func (p Palette) First() RGB {
	if len(p) == 0 {
		return Black
	}
	return p[0]
}

// Last returns the last entry, or black for an empty palette.
func (p Palette) Last() RGB {
	if len(p) == 0 {
		return Black
	}
	return p[len(p)-1]
}
