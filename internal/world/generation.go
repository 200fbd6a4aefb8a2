// Island layout generation.
// Produces the region-indexed discipline and dice arrays a game is built
// from, either the fixed default board or a noise-shuffled variant.
package world

import (
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Layout is the pair of construction arrays consumed by NewMap.
type Layout struct {
	Disciplines [NumRegions]Discipline `json:"disciplines"`
	Dice        [NumRegions]int        `json:"dice"`
}

// DefaultLayout returns the standard island.
func DefaultLayout() Layout {
	return Layout{
		Disciplines: [NumRegions]Discipline{
			StudentBQN, StudentMMONEY, StudentMJ,
			StudentMMONEY, StudentMJ, StudentBPS,
			StudentMTV, StudentMTV, StudentBPS,
			StudentMTV, StudentBQN, StudentMJ,
			StudentBQN, StudentTHD, StudentMJ,
			StudentMMONEY, StudentMTV, StudentBQN,
			StudentBPS,
		},
		Dice: [NumRegions]int{
			9, 10, 8, 12, 6, 5,
			3, 11, 3, 11, 4, 6,
			4, 9, 9, 2, 8, 10,
			5,
		},
	}
}

// GenConfig holds layout generation parameters.
type GenConfig struct {
	Seed      int64   // Random seed (0 = random)
	Frequency float64 // Noise sampling frequency across the island
	Octaves   int     // Noise layers summed per sample
}

// DefaultGenConfig returns a configuration that yields visibly clustered
// disciplines without collapsing them into single blocks.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:      0,
		Frequency: 0.45,
		Octaves:   2,
	}
}

// GenerateLayout deals the default board's disciplines and dice values to
// new regions. Two independent noise fields order the regions; the
// sorted disciplines and dice values are dealt along those orders, so
// similar disciplines cluster and the overall mix never changes.
func GenerateLayout(cfg GenConfig) Layout {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	base := DefaultLayout()

	discNoise := opensimplex.NewNormalized(seed)
	diceNoise := opensimplex.NewNormalized(seed + 1)

	disciplines := base.Disciplines[:]
	sortedDisc := make([]Discipline, len(disciplines))
	copy(sortedDisc, disciplines)
	sort.Slice(sortedDisc, func(i, j int) bool { return sortedDisc[i] < sortedDisc[j] })

	dice := base.Dice[:]
	sortedDice := make([]int, len(dice))
	copy(sortedDice, dice)
	sort.Ints(sortedDice)

	var out Layout
	for i, region := range regionOrder(discNoise, cfg) {
		out.Disciplines[region] = sortedDisc[i]
	}
	for i, region := range regionOrder(diceNoise, cfg) {
		out.Dice[region] = sortedDice[i]
	}
	return out
}

// regionOrder returns region ids sorted by the noise value sampled at the
// centre of each hex.
func regionOrder(noise opensimplex.Noise, cfg GenConfig) []int {
	type sample struct {
		region int
		value  float64
	}
	samples := make([]sample, 0, NumRegions)
	for id := 0; id < NumRegions; id++ {
		c, _ := RegionToCoord(id)
		x, y := hexCentre(c)
		samples = append(samples, sample{region: id, value: octaveNoise(noise, x, y, cfg.Octaves, cfg.Frequency, 0.5)})
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].value < samples[j].value })

	order := make([]int, len(samples))
	for i, s := range samples {
		order[i] = s.region
	}
	return order
}

// hexCentre converts axial coordinates to cartesian space for sampling.
// Flat-topped hexes: columns are 1.5 apart, rows sqrt(3) apart, and each
// column step shifts half a row.
func hexCentre(c Coord) (float64, float64) {
	x := 1.5 * float64(c.X)
	y := math.Sqrt(3.0) * (float64(c.Y) + float64(c.X)/2.0)
	return x, y
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// DisciplineCounts returns how many regions carry each discipline.
func DisciplineCounts(l Layout) map[Discipline]int {
	counts := make(map[Discipline]int)
	for _, d := range l.Disciplines {
		counts[d]++
	}
	return counts
}
