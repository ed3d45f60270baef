package domain

import (
	"fmt"
	"math"
)

// SignNames lists the twelve zodiac signs in zodiacal order. Index i covers
// ecliptic longitudes [i*30, (i+1)*30).
var SignNames = [12]string{
	"Áries", "Touro", "Gêmeos", "Câncer", "Leão", "Virgem",
	"Libra", "Escorpião", "Sagitário", "Capricórnio", "Aquário", "Peixes",
}

// Canonical body names in chart order.
const (
	BodySun     = "Sol"
	BodyMoon    = "Lua"
	BodyMercury = "Mercúrio"
	BodyVenus   = "Vênus"
	BodyMars    = "Marte"
	BodyJupiter = "Júpiter"
	BodySaturn  = "Saturno"
	BodyUranus  = "Urano"
	BodyNeptune = "Netuno"
	BodyPluto   = "Plutão"
)

// AllBodies is the full ten-body chart set in zodiacal chart order.
var AllBodies = []string{
	BodySun, BodyMoon, BodyMercury, BodyVenus, BodyMars,
	BodyJupiter, BodySaturn, BodyUranus, BodyNeptune, BodyPluto,
}

// NormalizeLongitude folds any longitude into [0,360). Providers can return
// values slightly outside the range from floating-point drift, and some
// analytic series report accumulated longitudes of several full turns.
func NormalizeLongitude(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// Mod can round back up to exactly 360 for tiny negative inputs.
	if d >= 360 {
		d -= 360
	}
	return d
}

// SignOf maps an ecliptic longitude to its zodiac sector. A longitude at an
// exact multiple of 30 belongs to the sign beginning at that degree.
func SignOf(longitude float64) SignedDegree {
	d := NormalizeLongitude(longitude)
	idx := int(d / 30)
	if idx > 11 {
		idx = 11
	}
	return SignedDegree{
		Sign:   SignNames[idx],
		Degree: d - float64(idx)*30,
	}
}

// FormatBodyLine renders one chart line: body, degree within sign to two
// decimals, sign, interpretation.
func FormatBodyLine(body string, sd SignedDegree, interpretation string) string {
	return fmt.Sprintf("%s: %.2f° de %s — %s", body, sd.Degree, sd.Sign, interpretation)
}
