package service

import (
	"context"

	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/repository"
)

type LevelService interface {
	GetAllLevels(ctx context.Context) ([]dto.LevelResponse, error)
}

type levelService struct {
	levelRepo repository.LevelRepository
}

func NewLevelService(levelRepo repository.LevelRepository) LevelService {
	return &levelService{levelRepo: levelRepo}
}

func (s *levelService) GetAllLevels(ctx context.Context) ([]dto.LevelResponse, error) {
	levels, err := s.levelRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toLevelResponses(levels), nil
}
