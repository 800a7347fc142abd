package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/services"
)

// ListResponse is a registration-driven listing: one row of rendered
// list_display columns per record.
type ListResponse struct {
	Kind    catalog.Kind `json:"kind"`
	Columns []string     `json:"columns"`
	Items   []ListItem   `json:"items"`
}

type ListItem struct {
	ID  string   `json:"id"`
	Row []string `json:"row"`
}

// --- Request bodies ---

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

type authorRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	DateOfBirth string `json:"date_of_birth"`
	DateOfDeath string `json:"date_of_death"`
}

type bookRequest struct {
	Title    string  `json:"title" binding:"required"`
	Summary  *string `json:"summary"`
	ISBN     string  `json:"isbn" binding:"required"`
	AuthorID uint    `json:"author_id" binding:"required"`
	// Omitted ID lists leave links unchanged on update.
	GenreIDs    []uint `json:"genre_ids"`
	LanguageIDs []uint `json:"language_ids"`
}

type instanceRequest struct {
	BookID  uint   `json:"book_id" binding:"required"`
	Imprint string `json:"imprint"`
	Status  string `json:"status"`
	DueBack string `json:"due_back"`
}

type AuthorDetail struct {
	Author entities.Author `json:"author"`
	Books  []entities.Book `json:"books"`
}

type BookDetail struct {
	Book      entities.Book           `json:"book"`
	Instances []entities.BookInstance `json:"instances"`
}

// crudStore is the shape shared by the stores of kinds with numeric IDs.
type crudStore[T any] interface {
	Create(ctx context.Context, e *T) error
	Get(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id uint) error
}

// resource serves the management API of one numeric-ID kind.
type resource[T any] struct {
	name    string
	reg     admin.Registration
	store   crudStore[T]
	history ChangeRecorder
	bind    func(c *gin.Context) (*T, bool)
	setID   func(e *T, id uint)
	idOf    func(e T) uint
	repr    func(e T) string
	detail  func(ctx context.Context, e *T) (any, error)
}

func (r *resource[T]) objectID(e T) string {
	return strconv.FormatUint(uint64(r.idOf(e)), 10)
}

func (r *resource[T]) List(c *gin.Context) {
	list, err := r.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	resp := ListResponse{Kind: r.reg.Kind, Columns: r.reg.ListDisplay, Items: make([]ListItem, 0, len(list))}
	for _, e := range list {
		row, err := admin.Row(r.reg, e)
		if err != nil {
			respondInternalError(c, err, "render "+r.name)
			return
		}
		resp.Items = append(resp.Items, ListItem{ID: r.objectID(e), Row: row})
	}
	c.JSON(http.StatusOK, resp)
}

func (r *resource[T]) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	e, err := r.store.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	if r.detail == nil {
		c.JSON(http.StatusOK, e)
		return
	}
	detail, err := r.detail(c.Request.Context(), e)
	if err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (r *resource[T]) Create(c *gin.Context) {
	e, ok := r.bind(c)
	if !ok {
		return
	}
	if err := r.store.Create(c.Request.Context(), e); err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	if r.history != nil {
		r.history.LogAddition(c.Request.Context(), r.reg.Kind, r.objectID(*e), r.repr(*e))
	}
	respondCreated(c, e)
}

func (r *resource[T]) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	e, ok := r.bind(c)
	if !ok {
		return
	}
	r.setID(e, id)
	if err := r.store.Update(c.Request.Context(), e); err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	updated, err := r.store.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	if r.history != nil {
		r.history.LogChange(c.Request.Context(), r.reg.Kind, r.objectID(*updated), r.repr(*updated))
	}
	c.JSON(http.StatusOK, updated)
}

func (r *resource[T]) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var repr string
	if r.history != nil {
		existing, err := r.store.Get(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err, r.name)
			return
		}
		repr = r.repr(*existing)
	}
	if err := r.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, r.name)
		return
	}
	if r.history != nil {
		r.history.LogDeletion(c.Request.Context(), r.reg.Kind, strconv.FormatUint(uint64(id), 10), repr)
	}
	respondSuccess(c, r.name+" deleted")
}

func (r *resource[T]) register(group *gin.RouterGroup) {
	path := "/" + r.reg.Path
	group.GET(path, r.List)
	group.POST(path, r.Create)
	group.GET(path+"/:id", r.Get)
	group.PUT(path+"/:id", r.Update)
	group.DELETE(path+"/:id", r.Delete)
}

// AdminController exposes the management API for every kind registered
// on the site.
type AdminController struct {
	site    *admin.Site
	stores  services.CatalogStores
	history ChangeRecorder
	auditor PayloadAuditor
}

// NewAdminController creates the management API. history and auditor may
// be nil.
func NewAdminController(site *admin.Site, stores services.CatalogStores, history ChangeRecorder, auditor PayloadAuditor) *AdminController {
	return &AdminController{site: site, stores: stores, history: history, auditor: auditor}
}

// Site describes the registered kinds.
func (ac *AdminController) Site(c *gin.Context) {
	c.JSON(http.StatusOK, ac.site)
}

// RegisterRoutes mounts the site description and one resource per
// registered kind on group.
func (ac *AdminController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/site", ac.Site)
	group.POST("/import", ac.Import)
	if ac.history != nil {
		group.GET("/history", ac.History)
	}

	if reg, ok := ac.site.Lookup(catalog.KindGenre); ok && ac.stores.Genres != nil {
		ac.genres(reg).register(group)
	}
	if reg, ok := ac.site.Lookup(catalog.KindLanguage); ok && ac.stores.Languages != nil {
		ac.languages(reg).register(group)
	}
	if reg, ok := ac.site.Lookup(catalog.KindAuthor); ok && ac.stores.Authors != nil {
		ac.authors(reg).register(group)
	}
	if reg, ok := ac.site.Lookup(catalog.KindBook); ok && ac.stores.Books != nil {
		ac.books(reg).register(group)
	}
	if reg, ok := ac.site.Lookup(catalog.KindBookInstance); ok && ac.stores.Instances != nil {
		NewInstancesController(reg, ac.stores.Instances, ac.history).register(group)
	}
}

func bindJSON[R any](c *gin.Context) (*R, bool) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return nil, false
	}
	return &req, true
}

func (ac *AdminController) genres(reg admin.Registration) *resource[entities.Genre] {
	return &resource[entities.Genre]{
		name:    "genre",
		reg:     reg,
		store:   ac.stores.Genres,
		history: ac.history,
		bind: func(c *gin.Context) (*entities.Genre, bool) {
			req, ok := bindJSON[nameRequest](c)
			if !ok {
				return nil, false
			}
			return &entities.Genre{Name: req.Name}, true
		},
		setID: func(e *entities.Genre, id uint) { e.ID = id },
		idOf:  func(e entities.Genre) uint { return e.ID },
		repr:  catalog.FormatGenre,
	}
}

func (ac *AdminController) languages(reg admin.Registration) *resource[entities.Language] {
	return &resource[entities.Language]{
		name:    "language",
		reg:     reg,
		store:   ac.stores.Languages,
		history: ac.history,
		bind: func(c *gin.Context) (*entities.Language, bool) {
			req, ok := bindJSON[nameRequest](c)
			if !ok {
				return nil, false
			}
			return &entities.Language{Name: req.Name}, true
		},
		setID: func(e *entities.Language, id uint) { e.ID = id },
		idOf:  func(e entities.Language) uint { return e.ID },
		repr:  catalog.FormatLanguage,
	}
}

func (ac *AdminController) authors(reg admin.Registration) *resource[entities.Author] {
	r := &resource[entities.Author]{
		name:    "author",
		reg:     reg,
		store:   ac.stores.Authors,
		history: ac.history,
		bind: func(c *gin.Context) (*entities.Author, bool) {
			req, ok := bindJSON[authorRequest](c)
			if !ok {
				return nil, false
			}
			born, err := catalog.ParseDate(req.DateOfBirth)
			if err != nil {
				respondBadRequest(c, err.Error())
				return nil, false
			}
			died, err := catalog.ParseDate(req.DateOfDeath)
			if err != nil {
				respondBadRequest(c, err.Error())
				return nil, false
			}
			return &entities.Author{
				FirstName:   req.FirstName,
				LastName:    req.LastName,
				DateOfBirth: born,
				DateOfDeath: died,
			}, true
		},
		setID: func(e *entities.Author, id uint) { e.ID = id },
		idOf:  func(e entities.Author) uint { return e.ID },
		repr:  catalog.FormatAuthor,
	}
	if ac.stores.Books != nil && hasInline(reg, catalog.KindBook) {
		r.detail = func(ctx context.Context, a *entities.Author) (any, error) {
			books, err := ac.stores.Books.ListByAuthor(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			return AuthorDetail{Author: *a, Books: books}, nil
		}
	}
	return r
}

func (ac *AdminController) books(reg admin.Registration) *resource[entities.Book] {
	r := &resource[entities.Book]{
		name:    "book",
		reg:     reg,
		store:   ac.stores.Books,
		history: ac.history,
		bind: func(c *gin.Context) (*entities.Book, bool) {
			req, ok := bindJSON[bookRequest](c)
			if !ok {
				return nil, false
			}
			b := &entities.Book{
				Title:    req.Title,
				Summary:  req.Summary,
				ISBN:     req.ISBN,
				AuthorID: req.AuthorID,
			}
			if req.GenreIDs != nil {
				b.Genres = make([]entities.Genre, 0, len(req.GenreIDs))
				for _, id := range req.GenreIDs {
					b.Genres = append(b.Genres, entities.Genre{ID: id})
				}
			}
			if req.LanguageIDs != nil {
				b.Languages = make([]entities.Language, 0, len(req.LanguageIDs))
				for _, id := range req.LanguageIDs {
					b.Languages = append(b.Languages, entities.Language{ID: id})
				}
			}
			return b, true
		},
		setID: func(e *entities.Book, id uint) { e.ID = id },
		idOf:  func(e entities.Book) uint { return e.ID },
		repr:  catalog.FormatBook,
	}
	if ac.stores.Instances != nil && hasInline(reg, catalog.KindBookInstance) {
		r.detail = func(ctx context.Context, b *entities.Book) (any, error) {
			instances, err := ac.stores.Instances.ListByBook(ctx, b.ID)
			if err != nil {
				return nil, err
			}
			return BookDetail{Book: *b, Instances: instances}, nil
		}
	}
	return r
}

func hasInline(reg admin.Registration, kind catalog.Kind) bool {
	for _, in := range reg.Inlines {
		if in.Kind == kind {
			return true
		}
	}
	return false
}
