package mandel

// Threshold is the escape radius. An orbit has escaped once |z| > Threshold.
const Threshold = 2.0

// EscapeCount returns how many iterations of z = z*z + c keep the orbit
// inside the escape radius, starting from z0 = c.
//
// The radius test runs before each update, so a point that starts outside
// the radius returns 0 and a point that never escapes returns maxIter. The
// test is strict: |z| == 2 has not escaped.
//
// EscapeCount has no side effects and is safe for concurrent use.
func EscapeCount[F Float](re, im F, maxIter int) int {
	r2 := F(Threshold * Threshold)

	zr, zi := re, im
	for i := range maxIter {
		zr2, zi2 := zr*zr, zi*zi
		if zr2+zi2 > r2 {
			return i
		}
		zi = 2*zr*zi + im
		zr = zr2 - zi2 + re
	}
	return max(maxIter, 0)
}

// EscapeCountComplex is EscapeCount for a complex128 point.
func EscapeCountComplex(c complex128, maxIter int) int {
	return EscapeCount(real(c), imag(c), maxIter)
}
