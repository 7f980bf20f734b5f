package service

import (
	"fmt"
	"math"
)

const MaxScoreOnTen = 10

type ScoreConverterService interface {
	ConvertToTenScale(correctWordsPercentage int) (int, error)
	Band(score int) string
}

type scoreConverterServiceImpl struct{}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{}
}

// ConvertToTenScale maps the percentage of correctly spelled words to a mark
// out of ten, rounded half away from zero.
func (s *scoreConverterServiceImpl) ConvertToTenScale(correctWordsPercentage int) (int, error) {
	if correctWordsPercentage < 0 || correctWordsPercentage > 100 {
		return 0, fmt.Errorf("percentage %d is out of valid range (0-100)", correctWordsPercentage)
	}
	return int(math.Round(float64(correctWordsPercentage) / 10)), nil
}

// Band labels a mark for the timeline colours.
func (s *scoreConverterServiceImpl) Band(score int) string {
	switch {
	case score >= MaxScoreOnTen:
		return "perfect"
	case score >= 8:
		return "good"
	case score == 7:
		return "fair"
	case score >= 5:
		return "medium"
	default:
		return "low"
	}
}
