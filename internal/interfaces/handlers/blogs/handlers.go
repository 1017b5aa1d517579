package blogs

import (
	"errors"
	"fmt"

	blogsvc "porvenir-web/internal/application/blogs"
	"porvenir-web/internal/application/pagination"
	"porvenir-web/internal/interfaces/views"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *blogsvc.Service
}

// GET /blog/page/:page
func (h *Handlers) Index(c *fiber.Ctx) error {
	index := h.Service.Index(c.UserContext(), pagination.ParsePage(c.Params("page")))
	if !index.Failed && index.Route.Total > 0 && index.Route.Page > index.Route.TotalPages() {
		return fiber.ErrNotFound
	}
	return c.Render("pages/blog-index", fiber.Map{
		"Title": fmt.Sprintf("Blog · Página %d", index.Route.Page),
		"Index": index,
	}, views.Layout)
}

// GET /blog/:slug
func (h *Handlers) Post(c *fiber.Ctx) error {
	post, err := h.Service.Detail(c.UserContext(), c.Params("slug"))
	if errors.Is(err, blogsvc.ErrBlogNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return c.Render("pages/blog-post", fiber.Map{"Title": post.Blog.Title, "Post": post}, views.Layout)
}
