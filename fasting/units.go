package fasting

import "github.com/tigerkidtools/calc-engine/engine"

// KgPerPound is the exact international pound.
const KgPerPound = 0.453592

const cmPerInch = 2.54

type WeightUnit string

const (
	WeightKg  WeightUnit = "kg"
	WeightLbs WeightUnit = "lbs"
)

type HeightUnit string

const (
	HeightCm     HeightUnit = "cm"
	HeightFeetIn HeightUnit = "ft-in"
)

func PoundsToKg(lbs float64) float64 { return lbs * KgPerPound }
func KgToPounds(kg float64) float64  { return kg / KgPerPound }

// FeetInchesToCm converts a height like 5'9" to centimetres.
func FeetInchesToCm(feet, inches float64) float64 {
	return (feet*12 + inches) * cmPerInch
}

// Measurements is body size as entered, in either unit system.
type Measurements struct {
	Weight     float64
	WeightUnit WeightUnit // empty means kg
	Height     float64    // used when HeightUnit is cm
	HeightUnit HeightUnit // empty means cm
	Feet       float64
	Inches     float64
}

// Metric returns weight in kilograms and height in centimetres.
func (m Measurements) Metric() (weightKg, heightCm float64, err error) {
	if err := engine.RequireNonNegative("weight", m.Weight); err != nil {
		return 0, 0, err
	}
	switch m.WeightUnit {
	case "", WeightKg:
		weightKg = m.Weight
	case WeightLbs:
		weightKg = PoundsToKg(m.Weight)
	default:
		return 0, 0, engine.Invalidf("weightUnit", "unknown unit %q", m.WeightUnit)
	}

	switch m.HeightUnit {
	case "", HeightCm:
		if err := engine.RequireNonNegative("height", m.Height); err != nil {
			return 0, 0, err
		}
		heightCm = m.Height
	case HeightFeetIn:
		if err := engine.RequireNonNegative("feet", m.Feet); err != nil {
			return 0, 0, err
		}
		if err := engine.RequireNonNegative("inches", m.Inches); err != nil {
			return 0, 0, err
		}
		heightCm = FeetInchesToCm(m.Feet, m.Inches)
	default:
		return 0, 0, engine.Invalidf("heightUnit", "unknown unit %q", m.HeightUnit)
	}

	// Bounds are checked after conversion so both unit systems share them.
	if weightKg > MaxWeightKg {
		return 0, 0, engine.Invalidf("weight", "must not exceed %v kg", MaxWeightKg)
	}
	if heightCm > MaxHeightCm {
		return 0, 0, engine.Invalidf("height", "must not exceed %v cm", MaxHeightCm)
	}
	return weightKg, heightCm, nil
}
