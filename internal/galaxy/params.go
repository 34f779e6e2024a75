package galaxy

// DefaultCount is the particle count used when a caller asks for none.
const DefaultCount = 4000

// DwarfCount is the fixed particle count of a dwarf galaxy.
const DwarfCount = 100000

// Gradient maps t = 1 - r/Radius to color: red is fixed at 1,
// g = GSlope*t + GBase, b = BBase + BSlope*(1-t).
type Gradient struct {
	GSlope, GBase float32
	BBase, BSlope float32
}

// At returns the color for t.
func (g Gradient) At(t float32) (r, gr, b float32) {
	return 1.0, g.GSlope*t + g.GBase, g.BBase + g.BSlope*(1-t)
}

// SpiralParams configures the arm-based archetypes (spiral, barred, dwarf).
type SpiralParams struct {
	Branches     int
	BranchOffset float32 // added to every branch angle
	Spin         float32
	Radius       float32
	Randomness   float32
	RadiusBias   float32 // exponent on the uniform radius sample

	// Arm wave: spin += sin(r*WaveFreq)*WaveAmp.
	WaveFreq, WaveAmp float32

	// Disk half-thickness is (DiskBase + (1-r/Radius)*DiskCore)/2.
	DiskBase, DiskCore float32

	Gradient Gradient

	// Bar settings. An empty BarBranches disables the bar.
	BarBranches  []int
	BarRadius    float32
	BarSpin      float32 // spin multiplier inside the bar
	BarJitter    float32 // randomness multiplier inside the bar
	BarThickness float32
	BarTint      [3]float32

	// FixedCount, when positive, replaces the requested count.
	FixedCount int
}

// IsBar reports whether a particle on branch with radial coordinate r
// belongs to the bar.
func (p SpiralParams) IsBar(branch int, r float32) bool {
	if r >= p.BarRadius {
		return false
	}
	for _, b := range p.BarBranches {
		if b == branch {
			return true
		}
	}
	return false
}

// EllipticalParams configures the ellipsoidal archetype.
// A, B and C scale x, z and y respectively.
type EllipticalParams struct {
	A, B, C    float32
	RadiusBias float32

	// g = GBase - t*GFall, b = BBase - t*BFall for radius fraction t.
	GBase, GFall float32
	BBase, BFall float32
}

// IrregularParams configures the noise-displaced archetype.
type IrregularParams struct {
	Radius      float32
	HeightScale float32    // box height relative to width
	Displace    [3]float32 // per-axis noise displacement
	ShapeScale  float32    // coordinate scale of the displacement noise
	BurstScale  float32    // coordinate scale of the color noise
	BurstHigh   float32
	BurstLow    float32
}

// SpiralDefaults returns the six-armed spiral.
func SpiralDefaults() SpiralParams {
	return SpiralParams{
		Branches:   6,
		Spin:       0.7,
		Radius:     14,
		Randomness: 0.35,
		RadiusBias: 1.3,
		WaveFreq:   0.7,
		WaveAmp:    0.4,
		DiskBase:   0.4,
		DiskCore:   2,
		Gradient:   Gradient{GSlope: 0.7, GBase: 0.3, BBase: 0.3, BSlope: 0.7},
	}
}

// BarredDefaults returns the six-armed spiral with a bar on branches 0 and 3.
func BarredDefaults() SpiralParams {
	return SpiralParams{
		Branches:     6,
		BranchOffset: 0.4,
		Spin:         0.8,
		Radius:       14,
		Randomness:   0.25,
		RadiusBias:   1.3,
		DiskBase:     0.4,
		DiskCore:     2,
		Gradient:     Gradient{GSlope: 0.75, GBase: 0.25, BBase: 0.4, BSlope: 0.5},
		BarBranches:  []int{0, 3},
		BarRadius:    3.5,
		BarSpin:      0.15,
		BarJitter:    0.15,
		BarThickness: 0.8,
		BarTint:      [3]float32{1.0, 0.9, 0.75},
	}
}

// DwarfDefaults returns the compact five-armed dwarf.
func DwarfDefaults() SpiralParams {
	return SpiralParams{
		Branches:   5,
		Spin:       0.4,
		Radius:     5.5,
		Randomness: 0.5,
		RadiusBias: 1.6,
		DiskBase:   0.3,
		DiskCore:   1,
		Gradient:   Gradient{GSlope: 0.75, GBase: 0.25, BBase: 0.55, BSlope: 0.45},
		FixedCount: DwarfCount,
	}
}

// EllipticalDefaults returns the triaxial elliptical.
func EllipticalDefaults() EllipticalParams {
	return EllipticalParams{
		A:          10,
		B:          5,
		C:          4,
		RadiusBias: 4,
		GBase:      0.75,
		GFall:      0.35,
		BBase:      0.6,
		BFall:      0.25,
	}
}

// IrregularDefaults returns the clumpy irregular.
func IrregularDefaults() IrregularParams {
	return IrregularParams{
		Radius:      5,
		HeightScale: 0.6,
		Displace:    [3]float32{4, 2, 4},
		ShapeScale:  0.1,
		BurstScale:  0.2,
		BurstHigh:   0.25,
		BurstLow:    -0.3,
	}
}
