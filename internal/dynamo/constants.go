package dynamo

// Physical constants in the engine's working units (days, solar radii,
// solar masses), derived from SI nominal values in one place so the two
// propagation methods can never disagree on unit conversions.
const (
	metersPerSolRad = 6.957e8 // IAU 2015 nominal solar radius
	secondsPerDay   = 86400.0

	gmSunSI  = 1.3271244e20 // GM_sun, m^3 s^-2 (IAU 2015 nominal)
	cLightSI = 2.99792458e8 // m s^-1
)

// GMSun is the gravitational parameter of one solar mass in
// solRad^3 d^-2. Multiplying by a mass in solar masses gives the G*m
// factor of the Newtonian equations of motion.
const GMSun = gmSunSI * secondsPerDay * secondsPerDay /
	(metersPerSolRad * metersPerSolRad * metersPerSolRad)

// CLight is the speed of light in solRad d^-1, used by the light
// travel time correction.
const CLight = cLightSI * secondsPerDay / metersPerSolRad
