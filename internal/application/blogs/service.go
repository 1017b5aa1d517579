package blogs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"porvenir-web/internal/application/detail"
	"porvenir-web/internal/application/pagination"
	"porvenir-web/internal/domain"
	"porvenir-web/internal/infrastructure/contentapi"
	"porvenir-web/internal/pkg/validation"

	"github.com/rs/zerolog/log"
)

const (
	IndexPageSize = 6
	OthersLimit   = 3
)

var ErrBlogNotFound = errors.New("blog not found")

type Source interface {
	Blogs(ctx context.Context, q *contentapi.Query) (contentapi.BlogPage, error)
}

type Service struct {
	Source Source
}

type IndexPage struct {
	Blogs  []domain.Blog
	Route  pagination.Route
	Failed bool
}

// Post is a blog entry ready to render, with a few other posts to read next.
type Post struct {
	Blog   domain.Blog
	Body   []detail.Block
	Others []domain.Blog
}

// Index lists active posts, six per page.
func (s *Service) Index(ctx context.Context, page int) IndexPage {
	if page < 1 {
		page = 1
	}
	out := IndexPage{
		Blogs: []domain.Blog{},
		Route: pagination.Route{Page: page, PageSize: IndexPageSize, BasePath: "/blog"},
	}
	q := contentapi.NewQuery().
		Populate("portada").
		Eq("active", "true").
		Paginate(page, IndexPageSize)
	res, err := s.Source.Blogs(ctx, q)
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("blog index fetch failed")
		out.Failed = true
		return out
	}
	out.Blogs = res.Blogs
	out.Route.Total = res.Total
	return out
}

// Detail loads one post. A failure loading the "others" list only hides that list.
func (s *Service) Detail(ctx context.Context, slug string) (Post, error) {
	slug = strings.TrimSpace(slug)
	if !validation.IsValidSlug(slug) {
		return Post{}, ErrBlogNotFound
	}
	res, err := s.Source.Blogs(ctx, contentapi.NewQuery().
		Populate("portada", "agente.fotoPrincipal").
		Eq("slug", slug))
	if err != nil {
		return Post{}, fmt.Errorf("load blog %q: %w", slug, err)
	}
	if len(res.Blogs) == 0 {
		return Post{}, ErrBlogNotFound
	}

	post := Post{Blog: res.Blogs[0], Body: detail.RenderRichText(res.Blogs[0].Content), Others: []domain.Blog{}}
	others, err := s.Source.Blogs(ctx, contentapi.NewQuery().
		Populate("portada").
		Ne("slug", slug).
		Eq("active", "true").
		Limit(OthersLimit))
	if err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("related blogs fetch failed")
		return post, nil
	}
	post.Others = others.Blogs
	if len(post.Others) > OthersLimit {
		post.Others = post.Others[:OthersLimit]
	}
	return post, nil
}
