// Package physics holds the tire rolling loss terms.
//
// Rolling resistance is split into a hysteresis part, which falls with
// inflation pressure as A/p + B, and an impact part, D(p/p0)^γ, which
// grows once the tire stops absorbing road texture:
//
//	Crr(p) = A/p + B + D(p/p0)^γ
//
// A can be entered by hand or estimated from tire width, rider mass and a
// lumped material loss factor with [EstimateA]. [PowerScale] converts a
// coefficient into watts at a given mass and speed.
package physics
