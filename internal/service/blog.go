package service

import (
	"context"

	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/storage"
)

// BlogService manages blog posts.
type BlogService struct {
	blogs  ContentStore[model.Blog]
	images storage.ImageStore
}

func NewBlogService(blogs ContentStore[model.Blog], images storage.ImageStore) *BlogService {
	return &BlogService{blogs: blogs, images: images}
}

// List returns every post, newest first.
func (s *BlogService) List(ctx context.Context) ([]model.BlogResponse, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, blogResponse(b))
	}
	return out, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (model.BlogResponse, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return model.BlogResponse{}, notFound(err, ErrBlogNotFound)
	}
	return blogResponse(*blog), nil
}

// Create stores a new post authored by authorID. The slug is derived from the title.
func (s *BlogService) Create(ctx context.Context, authorID string, req model.BlogRequest) (model.BlogResponse, error) {
	if err := required("title", req.Title); err != nil {
		return model.BlogResponse{}, err
	}
	if err := required("content", req.Content); err != nil {
		return model.BlogResponse{}, err
	}

	blog := model.Blog{
		Title:      *req.Title,
		Slug:       slugify(*req.Title),
		Content:    *req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		AuthorID:   authorID,
	}
	if req.Published != nil {
		blog.Published = *req.Published
	}

	if err := s.blogs.Create(ctx, &blog); err != nil {
		return model.BlogResponse{}, err
	}
	return blogResponse(blog), nil
}

// Update applies the fields present in req. A new title also renews the slug.
func (s *BlogService) Update(ctx context.Context, id string, req model.BlogRequest) (model.BlogResponse, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return model.BlogResponse{}, notFound(err, ErrBlogNotFound)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return model.BlogResponse{}, invalid("title", "title cannot be empty")
		}
		blog.Title = *req.Title
		blog.Slug = slugify(*req.Title)
	}
	if req.Content != nil {
		if *req.Content == "" {
			return model.BlogResponse{}, invalid("content", "content cannot be empty")
		}
		blog.Content = *req.Content
	}
	if req.Excerpt != nil {
		blog.Excerpt = req.Excerpt
	}
	if req.Published != nil {
		blog.Published = *req.Published
	}

	var replaced *string
	if req.CoverImage != nil {
		replaced = blog.CoverImage
		blog.CoverImage = req.CoverImage
	}

	if err := s.blogs.Save(ctx, blog); err != nil {
		return model.BlogResponse{}, notFound(err, ErrBlogNotFound)
	}

	if replaced != nil && *replaced != *blog.CoverImage {
		discardImage(ctx, s.images, replaced)
	}
	return blogResponse(*blog), nil
}

// Delete removes a post and returns it as it was before deletion.
func (s *BlogService) Delete(ctx context.Context, id string) (model.BlogResponse, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return model.BlogResponse{}, notFound(err, ErrBlogNotFound)
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return model.BlogResponse{}, notFound(err, ErrBlogNotFound)
	}

	discardImage(ctx, s.images, blog.CoverImage)
	return blogResponse(*blog), nil
}

func blogResponse(b model.Blog) model.BlogResponse {
	return model.BlogResponse{Blog: b, Author: model.AuthorOf(b.Author)}
}
