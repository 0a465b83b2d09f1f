package service

import (
	"testing"

	coreErrors "gameday-api/core/errors"
	"gameday-api/modules/event/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func likelihoods(values ...float64) []entity.Participant {
	ps := make([]entity.Participant, len(values))
	for i, v := range values {
		ps[i].Likelihood = v
	}
	return ps
}

func TestExpectedAttendance(t *testing.T) {
	assert.Equal(t, 0.0, ExpectedAttendance(nil))
	assert.Equal(t, 1.5, ExpectedAttendance(likelihoods(1, 0.5)))
	assert.Equal(t, 3.0, ExpectedAttendance(likelihoods(1, 1, 1)))

	// A likelihood of 0 occupies a response slot but adds nothing.
	ps := likelihoods(1, 0)
	assert.Equal(t, 1.0, ExpectedAttendance(ps))
	assert.Len(t, ps, 2)
}

func TestProgressPercentage(t *testing.T) {
	progress, appErr := ProgressPercentage(likelihoods(1, 0.5), 3)
	require.Nil(t, appErr)
	assert.InDelta(t, 50.0, progress, 1e-9)

	progress, appErr = ProgressPercentage(likelihoods(1, 1, 1, 1), 3)
	require.Nil(t, appErr)
	assert.InDelta(t, 133.333333, progress, 1e-4)
}

func TestProgressPercentageRejectsBadThreshold(t *testing.T) {
	for _, threshold := range []int{0, -1} {
		_, appErr := ProgressPercentage(likelihoods(1), threshold)
		require.NotNil(t, appErr, "threshold %d", threshold)
		assert.Equal(t, coreErrors.ErrInvalidThreshold, appErr.Code)
	}
}

// progress >= 100 and HasMinimumParticipants must agree for every set.
func TestHasMinimumParticipantsMatchesProgress(t *testing.T) {
	cases := []struct {
		name      string
		ps        []entity.Participant
		threshold int
	}{
		{"empty", nil, 3},
		{"below", likelihoods(1, 0.5), 3},
		{"just below", likelihoods(1, 1, 0.9), 3},
		{"exact", likelihoods(1, 1, 1), 3},
		{"above", likelihoods(1, 1, 1, 1), 3},
		{"maybes only", likelihoods(0.5, 0.5, 0.5, 0.5), 2},
		{"zeros", likelihoods(0, 0, 0), 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			progress, appErr := ProgressPercentage(tc.ps, tc.threshold)
			require.Nil(t, appErr)
			has, appErr := HasMinimumParticipants(tc.ps, tc.threshold)
			require.Nil(t, appErr)
			assert.Equal(t, progress >= 100, has)
		})
	}
}

func TestHasMinimumUsesUnroundedProgress(t *testing.T) {
	// 2.99 of 3: displays as 3.0 but must not count as reached.
	ps := likelihoods(1, 1, 0.99)
	has, appErr := HasMinimumParticipants(ps, 3)
	require.Nil(t, appErr)
	assert.False(t, has)

	progress, _ := ProgressPercentage(ps, 3)
	assert.Equal(t, 3.0, DisplayedAttendance(3, progress))
}

func TestDisplayedAttendance(t *testing.T) {
	assert.Equal(t, 1.5, DisplayedAttendance(3, 50))
	assert.Equal(t, 0.0, DisplayedAttendance(3, 0))
	assert.Equal(t, 2.3, DisplayedAttendance(7, 33.333333))
}
