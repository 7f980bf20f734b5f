package service

import (
	"sort"

	"github.com/jinzhu/copier"
	"github.com/tsootsoo/dictees/internal/dto"
	"github.com/tsootsoo/dictees/internal/model"
)

func toLevelResponses(levels []model.Level) []dto.LevelResponse {
	sort.SliceStable(levels, func(i, j int) bool { return levels[i].Rank < levels[j].Rank })
	resp := make([]dto.LevelResponse, 0, len(levels))
	copier.Copy(&resp, &levels)
	return resp
}

func toProfileResponse(p *model.Profile) dto.ProfileResponse {
	var resp dto.ProfileResponse
	copier.Copy(&resp, p)
	resp.ID = p.ID.String()

	levels := make([]model.Level, 0, len(p.ProfileLevels))
	for _, pl := range p.ProfileLevels {
		levels = append(levels, pl.Level)
	}
	resp.Levels = toLevelResponses(levels)
	return resp
}

func toDictationResponse(d *model.Dictation) dto.DictationResponse {
	resp := dto.DictationResponse{
		ID:           d.ID.String(),
		OriginalText: d.OriginalText,
		CountWords:   d.CountWords,
		AudioFile:    d.AudioFile,
		PictureFile:  d.PictureFile,
		CreatedAt:    d.CreatedAt,
	}
	if d.Topic != nil {
		topic := &dto.TopicResponse{}
		copier.Copy(topic, d.Topic)
		if d.Topic.Category != nil {
			topic.Category = &dto.CategoryResponse{}
			copier.Copy(topic.Category, d.Topic.Category)
		}
		resp.Topic = topic
	}

	levels := make([]model.Level, 0, len(d.DictationsLevels))
	for _, dl := range d.DictationsLevels {
		levels = append(levels, dl.Level)
	}
	resp.Levels = toLevelResponses(levels)
	return resp
}
