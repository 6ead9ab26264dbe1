package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

// BookHandler serves the public catalog endpoints and the staff catalog CRUD.
type BookHandler struct {
	books ports.BookService
}

func NewBookHandler(books ports.BookService) *BookHandler {
	return &BookHandler{books: books}
}

type bookRequest struct {
	Title         string   `json:"title" validate:"required"`
	Author        string   `json:"author" validate:"required"`
	ISBN          string   `json:"isbn" validate:"required,min=10,max=17"`
	Description   string   `json:"description,omitempty"`
	PublishYear   int      `json:"publish_year" validate:"omitempty,gte=0"`
	Publisher     string   `json:"publisher,omitempty"`
	TotalCopies   int      `json:"total_copies" validate:"required,gt=0"`
	CoverImageURL string   `json:"cover_image_url,omitempty"`
	Categories    []string `json:"categories,omitempty"`
}

func (r bookRequest) toInput() ports.BookInput {
	return ports.BookInput{
		Title:         r.Title,
		Author:        r.Author,
		ISBN:          r.ISBN,
		Description:   r.Description,
		PublishYear:   r.PublishYear,
		Publisher:     r.Publisher,
		TotalCopies:   r.TotalCopies,
		CoverImageURL: r.CoverImageURL,
		Categories:    r.Categories,
	}
}

// listFilter builds a ListBooksFilter from query parameters.
func listFilter(c echo.Context) ports.ListBooksFilter {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	return ports.ListBooksFilter{
		Search:     c.QueryParam("q"),
		Category:   c.QueryParam("category"),
		SortBy:     c.QueryParam("sort"),
		Descending: c.QueryParam("order") == "desc",
		Page:       page,
		Limit:      limit,
	}
}

// List returns one page of the catalog.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        q         query  string  false  "Partial match on title, author or ISBN"
// @Param        category  query  string  false  "Category filter"
// @Param        sort      query  string  false  "title, author, publish_year or created_at"
// @Param        order     query  string  false  "asc or desc"
// @Param        page      query  int     false  "Page number"
// @Param        limit     query  int     false  "Page size (max 100)"
// @Success      200  {object}  ports.ListBooksResult
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	result, err := h.books.List(c.Request().Context(), listFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Search is List with a required q parameter.
//
// @Summary      Search books
// @Tags         books
// @Produce      json
// @Param        q  query  string  true  "Search term"
// @Success      200  {object}  ports.ListBooksResult
// @Failure      400  {object}  map[string]string
// @Router       /books/search [get]
func (h *BookHandler) Search(c echo.Context) error {
	filter := listFilter(c)
	if filter.Search == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	result, err := h.books.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Available lists only books with borrowable copies.
//
// @Summary      List available books
// @Tags         books
// @Produce      json
// @Success      200  {object}  ports.ListBooksResult
// @Router       /books/available [get]
func (h *BookHandler) Available(c echo.Context) error {
	filter := listFilter(c)
	filter.AvailableOnly = true

	result, err := h.books.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns a single catalog entry.
//
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id  path  string  true  "Book ID"
// @Success      200  {object}  domain.Book
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.books.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Add creates a catalog entry. Staff only.
//
// @Summary      Add a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Book details"
// @Success      201   {object}  domain.Book
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /books [post]
func (h *BookHandler) Add(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.books.Add(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// Update replaces a catalog entry. Staff only.
//
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Book ID"
// @Param        body  body      bookRequest  true  "Book details"
// @Success      200   {object}  domain.Book
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.books.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Delete removes a catalog entry. Admin only; refused while copies are out.
//
// @Summary      Delete a book
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Book ID"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /admin/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.books.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
