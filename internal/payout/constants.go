package payout

// Mines ladder tuning
const (
	// MinesHouseShave is applied to every ladder multiplier
	MinesHouseShave = 0.97

	// MinesMinCap is the lowest cap any board can have
	MinesMinCap = 2.0

	// MinesHighDensityRatio marks boards where mines cover this share of tiles or more
	MinesHighDensityRatio = 0.6

	// MinesHighDensityBonus scales with the share of safe tiles revealed on dense boards
	MinesHighDensityBonus = 0.3

	// MinesBonusWeight scales the per-reveal mine density bonus
	MinesBonusWeight = 0.5
)

// minesBaseCaps maps the total tile count of each supported board to its base cap
var minesBaseCaps = map[int]float64{
	9:  16, // 3x3
	16: 24, // 4x4
	25: 48, // 5x5
}

// multiplierPlaces is the precision payout multipliers are rounded to before use
const multiplierPlaces int32 = 4
