package mandel

// Float is the sample precision of a grid and everything that reads it.
type Float interface {
	~float32 | ~float64
}

// Precision names a Float instantiation for configuration purposes.
type Precision int

const (
	// Float64 samples, the default.
	Float64 Precision = iota
	// Float32 samples, matching the RG32F texture layout.
	Float32
)

// String returns the flag spelling of the precision.
func (p Precision) String() string {
	switch p {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParsePrecision parses "float32" or "float64".
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "float32", "f32", "single":
		return Float32, nil
	case "float64", "f64", "double":
		return Float64, nil
	}
	return 0, &ParseError{Kind: "precision", Value: s}
}
