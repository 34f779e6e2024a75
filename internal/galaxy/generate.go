package galaxy

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// Generate builds the particle field for archetype a.
//
// count must be positive; non-positive counts fall back to DefaultCount.
// Dwarf galaxies always use DwarfCount regardless of count. Unknown
// archetypes generate a spiral. All randomness comes from rng, so a
// seeded source yields identical fields.
func Generate(rng *rand.Rand, a Archetype, count int) *Field {
	if count <= 0 {
		count = DefaultCount
	}

	switch a {
	case BarredSpiral:
		return GenerateSpiral(rng, BarredDefaults(), count)
	case Elliptical:
		return GenerateElliptical(rng, EllipticalDefaults(), count)
	case Irregular:
		return GenerateIrregular(rng, IrregularDefaults(), count)
	case Dwarf:
		return generateArms(rng, Dwarf, DwarfDefaults(), count)
	default:
		return GenerateSpiral(rng, SpiralDefaults(), count)
	}
}

// GenerateSpiral builds an arm-based galaxy from custom parameters. A
// non-empty BarBranches labels the field BarredSpiral.
func GenerateSpiral(rng *rand.Rand, p SpiralParams, count int) *Field {
	a := Spiral
	if len(p.BarBranches) > 0 {
		a = BarredSpiral
	}
	return generateArms(rng, a, p, count)
}

func generateArms(rng *rand.Rand, a Archetype, p SpiralParams, count int) *Field {
	if p.FixedCount > 0 {
		count = p.FixedCount
	}
	branches := p.Branches
	if branches < 1 {
		branches = 1
	}

	f := newField(a, count, p.Radius)
	for i := 0; i < count; i++ {
		r := math32.Pow(rng.Float32(), p.RadiusBias) * p.Radius
		branch := i % branches
		inBar := p.IsBar(branch, r)

		branchAngle := float32(branch)/float32(branches)*2*math32.Pi + p.BranchOffset
		spinFactor := float32(1)
		if inBar {
			spinFactor = p.BarSpin
		}
		angle := branchAngle + r*p.Spin*spinFactor + math32.Sin(r*p.WaveFreq)*p.WaveAmp

		dx, dz := math32.Cos(angle), math32.Sin(angle)
		x, z := dx*r, dz*r

		jitter := p.Randomness
		if inBar {
			// Thicken the bar across its length using the tangent direction.
			x += -dz * (rng.Float32() - 0.5) * p.BarThickness
			z += dx * (rng.Float32() - 0.5) * p.BarThickness
			jitter = p.BarJitter
		}
		x += (rng.Float32() - 0.5) * jitter * r
		z += (rng.Float32() - 0.5) * jitter * r

		edge := r / p.Radius
		y := (rng.Float32() - 0.5) * (p.DiskBase + (1-edge)*p.DiskCore)

		var cr, cg, cb float32
		if inBar {
			cr, cg, cb = p.BarTint[0], p.BarTint[1], p.BarTint[2]
		} else {
			cr, cg, cb = p.Gradient.At(1 - edge)
		}
		f.set(i, x, y, z, cr, cg, cb, r)
	}
	return f
}

// GenerateElliptical samples a center-heavy triaxial ellipsoid.
func GenerateElliptical(rng *rand.Rand, p EllipticalParams, count int) *Field {
	f := newField(Elliptical, count, math32.Max(p.A, math32.Max(p.B, p.C)))
	for i := 0; i < count; i++ {
		r := math32.Pow(rng.Float32(), p.RadiusBias)
		u := rng.Float32()
		v := rng.Float32()

		theta := math32.Acos(2*u - 1)
		phi := 2 * math32.Pi * v
		st := math32.Sin(theta)

		x := r * st * math32.Cos(phi) * p.A
		y := r * math32.Cos(theta) * p.C
		z := r * st * math32.Sin(phi) * p.B

		t := r
		f.set(i, x, y, z, 1.0, p.GBase-t*p.GFall, p.BBase-t*p.BFall, r)
	}
	return f
}

// GenerateIrregular scatters particles in a box and displaces them with
// Noise to form clumps. A second noise sample picks the color band.
func GenerateIrregular(rng *rand.Rand, p IrregularParams, count int) *Field {
	f := newField(Irregular, count, p.Radius+p.Displace[0])
	for i := 0; i < count; i++ {
		x := (rng.Float32() - 0.5) * p.Radius * 2
		y := (rng.Float32() - 0.5) * p.Radius * 2 * p.HeightScale
		z := (rng.Float32() - 0.5) * p.Radius * 2

		n := Noise(x*p.ShapeScale, y*p.ShapeScale, z*p.ShapeScale)
		x += n * p.Displace[0]
		y += n * p.Displace[1]
		z += n * p.Displace[2]

		burst := Noise(x*p.BurstScale, y*p.BurstScale, z*p.BurstScale)

		var cr, cg, cb float32
		switch {
		case burst > p.BurstHigh:
			cr, cg, cb = 0.7+burst*0.3, 0.8+burst*0.2, 1.0
		case burst < p.BurstLow:
			cr, cg, cb = 1.0, 0.6, 0.4
		default:
			t := rng.Float32()*0.8 + 0.2
			cr, cg, cb = 0.7*t+0.3, 0.7*t+0.2, 0.9*t
		}
		f.set(i, x, y, z, cr, cg, cb, math32.Sqrt(x*x+y*y+z*z))
	}
	return f
}
