// Package domain models the natal chart computation pipeline.
//
// # Pipeline
//
// A chart request carries a birth date, wall-clock time, and place name. The
// place is geocoded to a WGS-84 coordinate, the coordinate resolved to an
// IANA timezone, and the local date/time converted to the UTC instant using
// the DST rules in effect at that location on that date. An ephemeris
// provider then reports the ecliptic longitude of each tracked celestial
// body at that instant; each longitude maps to one of the twelve 30°-wide
// zodiac sectors and to a curated interpretation text.
//
// # Conventions
//
// Ecliptic longitudes are degrees in [0,360), measured from 0° Áries.
// Providers occasionally return values just outside that range from
// floating-point drift; SignOf normalizes modulo 360 before mapping.
//
// A longitude at an exact multiple of 30 belongs to the sign that begins at
// that degree: 30.0 is 0.00° de Touro, never 30.00° de Áries.
//
// Body and sign names are the Portuguese forms used by the public API
// (Sol, Lua, Mercúrio, ... / Áries ... Peixes).
//
// # Collaborators
//
// Geocoding, timezone lookup, ephemeris computation, counting, and audit
// publishing are external collaborators expressed as small interfaces in
// this package so concrete backends stay swappable.
package domain
