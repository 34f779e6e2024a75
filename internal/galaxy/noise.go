package galaxy

import "github.com/chewxy/math32"

// Noise is a cheap three-term sinusoidal pseudo-noise. Its range is
// bounded by [-0.99, 0.99].
func Noise(x, y, z float32) float32 {
	return (math32.Sin(x*12.1+y*7.33+z*5.77) +
		math32.Sin(x*3.11+z*9.17) +
		math32.Sin(y*4.27+x*8.91)) * 0.33
}
