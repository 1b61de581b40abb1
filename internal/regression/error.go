package regression

import "errors"

var (
	// ErrIllConditionedFit is returned when the design matrix cannot
	// identify the polynomial: fewer samples than features, a failed
	// decomposition, or, with WithStrictRank, a rank deficient matrix.
	ErrIllConditionedFit = errors.New("ill-conditioned fit")

	// ErrInvalidSamples is returned for empty sample sets and samples
	// that are not finite or have a zero observed rate.
	ErrInvalidSamples = errors.New("invalid samples")

	// ErrInvalidPolynomial is returned when coefficients do not match the
	// feature expansion of the requested degree.
	ErrInvalidPolynomial = errors.New("invalid polynomial")
)
