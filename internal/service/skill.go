package service

import (
	"context"

	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/storage"
)

// SkillService manages the skills shown on the portfolio.
type SkillService struct {
	skills ContentStore[model.Skill]
	images storage.ImageStore
}

func NewSkillService(skills ContentStore[model.Skill], images storage.ImageStore) *SkillService {
	return &SkillService{skills: skills, images: images}
}

func (s *SkillService) List(ctx context.Context) ([]model.SkillResponse, error) {
	skills, err := s.skills.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.SkillResponse, 0, len(skills))
	for _, sk := range skills {
		out = append(out, skillResponse(sk))
	}
	return out, nil
}

func (s *SkillService) Get(ctx context.Context, id string) (model.SkillResponse, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return model.SkillResponse{}, notFound(err, ErrSkillNotFound)
	}
	return skillResponse(*skill), nil
}

func (s *SkillService) Create(ctx context.Context, userID string, req model.SkillRequest) (model.SkillResponse, error) {
	if err := required("name", req.Name); err != nil {
		return model.SkillResponse{}, err
	}
	if err := checkLevel(req.Level); err != nil {
		return model.SkillResponse{}, err
	}

	skill := model.Skill{
		Name:     *req.Name,
		Category: req.Category,
		Level:    req.Level,
		IconURL:  req.IconURL,
		UserID:   userID,
	}

	if err := s.skills.Create(ctx, &skill); err != nil {
		return model.SkillResponse{}, err
	}
	return skillResponse(skill), nil
}

func (s *SkillService) Update(ctx context.Context, id string, req model.SkillRequest) (model.SkillResponse, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return model.SkillResponse{}, notFound(err, ErrSkillNotFound)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return model.SkillResponse{}, invalid("name", "name cannot be empty")
		}
		skill.Name = *req.Name
	}
	if req.Category != nil {
		skill.Category = req.Category
	}
	if req.Level != nil {
		if err := checkLevel(req.Level); err != nil {
			return model.SkillResponse{}, err
		}
		skill.Level = req.Level
	}

	var replaced *string
	if req.IconURL != nil {
		replaced = skill.IconURL
		skill.IconURL = req.IconURL
	}

	if err := s.skills.Save(ctx, skill); err != nil {
		return model.SkillResponse{}, notFound(err, ErrSkillNotFound)
	}

	if replaced != nil && *replaced != *skill.IconURL {
		discardImage(ctx, s.images, replaced)
	}
	return skillResponse(*skill), nil
}

func (s *SkillService) Delete(ctx context.Context, id string) (model.SkillResponse, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return model.SkillResponse{}, notFound(err, ErrSkillNotFound)
	}
	if err := s.skills.Delete(ctx, id); err != nil {
		return model.SkillResponse{}, notFound(err, ErrSkillNotFound)
	}

	discardImage(ctx, s.images, skill.IconURL)
	return skillResponse(*skill), nil
}

func checkLevel(level *int) error {
	if level != nil && (*level < 0 || *level > 100) {
		return invalid("level", "level must be between 0 and 100")
	}
	return nil
}

func skillResponse(sk model.Skill) model.SkillResponse {
	return model.SkillResponse{Skill: sk, User: model.AuthorOf(sk.User)}
}
