package utils

import "math"

// Minimum safe daily intake used when a weight-loss deficit is applied.
const (
	minCaloriesFemale = 1200
	minCaloriesMale   = 1500

	deficitCalories = 500
	surplusCalories = 400
)

var activityMultipliers = map[string]float64{
	"never":        1.2,
	"rarely":       1.375,
	"occasionally": 1.55,
	"regularly":    1.725,
	"daily":        1.9,
}

func IsValidFitnessLevel(level string) bool {
	_, ok := activityMultipliers[level]
	return ok
}

func FitnessLevels() []string {
	return []string{"never", "rarely", "occasionally", "regularly", "daily"}
}

// CalculateBMR computes basal metabolic rate with the Mifflin-St Jeor
// equation. Weight is in kilograms, height in centimeters.
func CalculateBMR(gender string, weight, height, age int) float64 {
	bmr := 10*float64(weight) + 6.25*float64(height) - 5*float64(age)
	if gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr
}

// CalculateDailyCalorieTarget scales BMR by the activity multiplier and
// adjusts for a target weight when one is set. A deficit is floored at the
// minimum safe intake for the gender; a surplus is a flat addition.
func CalculateDailyCalorieTarget(bmr float64, fitnessLevel, gender string, weight int, targetWeight *int) int {
	multiplier, ok := activityMultipliers[fitnessLevel]
	if !ok {
		multiplier = activityMultipliers["never"]
	}
	tdee := bmr * multiplier

	if targetWeight != nil {
		if *targetWeight < weight {
			tdee -= deficitCalories
			minimum := float64(minCaloriesMale)
			if gender == "female" {
				minimum = minCaloriesFemale
			}
			if tdee < minimum {
				tdee = minimum
			}
		} else if *targetWeight > weight {
			tdee += surplusCalories
		}
	}

	return int(math.Round(tdee))
}
