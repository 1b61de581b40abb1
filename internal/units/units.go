// Package units converts power and ratio values between the linear and
// logarithmic domains.
package units

import "github.com/wiless/vlib"

// AbsoluteToDb converts a linear ratio to decibels. x must be positive.
func AbsoluteToDb(x float64) float64 {
	return vlib.Db(x)
}

// DbToAbsolute converts decibels to a linear ratio.
func DbToAbsolute(db float64) float64 {
	return vlib.InvDb(db)
}

// WToDbm converts power in Watts to dBm. w must be positive.
func WToDbm(w float64) float64 {
	return AbsoluteToDb(w) + 30
}

// DbmToW converts power in dBm to Watts.
func DbmToW(dbm float64) float64 {
	return DbToAbsolute(dbm - 30)
}

// SumDbm adds the powers of uncorrelated signals given in dBm.
func SumDbm(p float64, more ...float64) float64 {
	total := DbmToW(p)
	for _, v := range more {
		total += DbmToW(v)
	}
	return WToDbm(total)
}
