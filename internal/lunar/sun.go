package lunar

import "math"

const degToRad = math.Pi / 180

// SunLongitude returns the apparent ecliptic longitude of the sun, in radians
// normalized to [0, 2π), at the given (fractional) Julian day.
//
// The series is the low precision solar position of Meeus, "Astronomical
// Algorithms" (1998), chapter 25.
func SunLongitude(jd float64) float64 {
	t := (jd - 2451545.0) / 36525 // Julian centuries since J2000.0
	t2 := t * t

	m := 357.5291 + 35999.0503*t - 0.0001559*t2 - 0.00000048*t*t2 // mean anomaly
	l0 := 280.46645 + 36000.76983*t + 0.0003032*t2                // mean longitude
	dl := (1.9146-0.004817*t-0.000014*t2)*math.Sin(degToRad*m) +
		(0.019993-0.000101*t)*math.Sin(degToRad*2*m) +
		0.00029*math.Sin(degToRad*3*m)

	theta := l0 + dl
	omega := 125.04 - 1934.136*t
	lambda := (theta - 0.00569 - 0.00478*math.Sin(omega*degToRad)) * degToRad

	r := lambda - 2*math.Pi*math.Floor(lambda/(2*math.Pi))
	if r >= 2*math.Pi {
		// rounding of tiny negative angles
		return 0
	}
	return r
}

// SolarTermIndex returns the solar term (0..23) in effect at local midnight
// starting day jd in a time zone tz hours east of UTC. Index 0 is the term that
// begins at the March equinox.
func SolarTermIndex(jd int, tz float64) int {
	return int(math.Floor(SunLongitude(float64(jd)-0.5-tz/24) / math.Pi * 12))
}

// majorTerm returns the major solar term (0..11) at local midnight of day jd.
// The month containing the December solstice always contains major term 9.
func majorTerm(jd int, tz float64) int {
	return int(math.Floor(SunLongitude(float64(jd)-0.5-tz/24) / math.Pi * 6))
}
