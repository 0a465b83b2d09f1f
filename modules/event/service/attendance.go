package service

import (
	"math"

	"gameday-api/core/errors"
	"gameday-api/modules/event/entity"
)

// ExpectedAttendance sums participant likelihoods. A firm yes contributes
// exactly 1.0, a maybe its fractional likelihood, a 0 nothing at all (the
// participant still counts toward "N responded").
func ExpectedAttendance(participants []entity.Participant) float64 {
	var sum float64
	for _, p := range participants {
		sum += p.Likelihood
	}
	return sum
}

// ProgressPercentage is expected attendance as a percentage of the
// threshold. Thresholds are validated at creation time; a legacy row with
// threshold <= 0 fails here instead of producing Inf or NaN.
func ProgressPercentage(participants []entity.Participant, threshold int) (float64, *errors.AppError) {
	if threshold <= 0 {
		return 0, errors.NewAppError(errors.ErrInvalidThreshold, "participant threshold must be positive", nil)
	}
	return 100 * ExpectedAttendance(participants) / float64(threshold), nil
}

// HasMinimumParticipants reports whether expected attendance has reached
// the threshold. The comparison uses the unrounded percentage.
func HasMinimumParticipants(participants []entity.Participant, threshold int) (bool, *errors.AppError) {
	progress, err := ProgressPercentage(participants, threshold)
	if err != nil {
		return false, err
	}
	return progress >= 100, nil
}

// DisplayedAttendance converts the progress percentage back into a
// human-readable expected count, rounded to one decimal. Cosmetic only:
// threshold-crossing decisions never read this value.
func DisplayedAttendance(threshold int, progress float64) float64 {
	return math.Round(float64(threshold)*progress/100*10) / 10
}
