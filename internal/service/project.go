package service

import (
	"context"
	"slices"

	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/storage"
)

// ProjectService manages portfolio projects.
type ProjectService struct {
	projects ContentStore[model.Project]
	images   storage.ImageStore
}

func NewProjectService(projects ContentStore[model.Project], images storage.ImageStore) *ProjectService {
	return &ProjectService{projects: projects, images: images}
}

func (s *ProjectService) List(ctx context.Context) ([]model.ProjectResponse, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectResponse(p))
	}
	return out, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (model.ProjectResponse, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return model.ProjectResponse{}, notFound(err, ErrProjectNotFound)
	}
	return projectResponse(*project), nil
}

func (s *ProjectService) Create(ctx context.Context, authorID string, req model.ProjectRequest) (model.ProjectResponse, error) {
	if err := required("title", req.Title); err != nil {
		return model.ProjectResponse{}, err
	}
	if err := required("description", req.Description); err != nil {
		return model.ProjectResponse{}, err
	}

	project := model.Project{
		Title:        *req.Title,
		Description:  *req.Description,
		Technologies: orEmpty(req.Technologies),
		GithubURL:    req.GithubURL,
		LiveURL:      req.LiveURL,
		ImageURL:     req.ImageURL,
		ImageURLs:    orEmpty(req.ImageURLs),
		AuthorID:     authorID,
	}
	if req.Featured != nil {
		project.Featured = *req.Featured
	}

	if err := s.projects.Create(ctx, &project); err != nil {
		return model.ProjectResponse{}, err
	}
	return projectResponse(project), nil
}

// Update applies the fields present in req. Images no longer referenced are removed from storage.
func (s *ProjectService) Update(ctx context.Context, id string, req model.ProjectRequest) (model.ProjectResponse, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return model.ProjectResponse{}, notFound(err, ErrProjectNotFound)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return model.ProjectResponse{}, invalid("title", "title cannot be empty")
		}
		project.Title = *req.Title
	}
	if req.Description != nil {
		if *req.Description == "" {
			return model.ProjectResponse{}, invalid("description", "description cannot be empty")
		}
		project.Description = *req.Description
	}
	if req.Technologies != nil {
		project.Technologies = req.Technologies
	}
	if req.GithubURL != nil {
		project.GithubURL = req.GithubURL
	}
	if req.LiveURL != nil {
		project.LiveURL = req.LiveURL
	}
	if req.Featured != nil {
		project.Featured = *req.Featured
	}

	var stale []string
	if req.ImageURL != nil {
		if project.ImageURL != nil && *project.ImageURL != *req.ImageURL {
			stale = append(stale, *project.ImageURL)
		}
		project.ImageURL = req.ImageURL
	}
	if req.ImageURLs != nil {
		for _, u := range project.ImageURLs {
			if !slices.Contains(req.ImageURLs, u) {
				stale = append(stale, u)
			}
		}
		project.ImageURLs = req.ImageURLs
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return model.ProjectResponse{}, notFound(err, ErrProjectNotFound)
	}

	for _, u := range stale {
		discardImage(ctx, s.images, &u)
	}
	return projectResponse(*project), nil
}

// Delete removes a project and returns it as it was before deletion.
func (s *ProjectService) Delete(ctx context.Context, id string) (model.ProjectResponse, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return model.ProjectResponse{}, notFound(err, ErrProjectNotFound)
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return model.ProjectResponse{}, notFound(err, ErrProjectNotFound)
	}

	discardImage(ctx, s.images, project.ImageURL)
	for _, u := range project.ImageURLs {
		discardImage(ctx, s.images, &u)
	}
	return projectResponse(*project), nil
}

func projectResponse(p model.Project) model.ProjectResponse {
	return model.ProjectResponse{Project: p, Author: model.AuthorOf(p.Author)}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
