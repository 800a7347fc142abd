package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// InstancesController serves book instances, which are keyed by UUID and
// listed through the registration's filters.
type InstancesController struct {
	reg     admin.Registration
	store   catalog.BookInstanceStore
	history ChangeRecorder
}

func NewInstancesController(reg admin.Registration, store catalog.BookInstanceStore, history ChangeRecorder) *InstancesController {
	return &InstancesController{reg: reg, store: store, history: history}
}

func (ic *InstancesController) register(group *gin.RouterGroup) {
	path := "/" + ic.reg.Path
	group.GET(path, ic.List)
	group.POST(path, ic.Create)
	group.GET(path+"/:id", ic.Get)
	group.PUT(path+"/:id", ic.Update)
	group.DELETE(path+"/:id", ic.Delete)
}

// List supports the status and due_back filters plus book_id:
//
//	GET /admin/api/bookinstances?status=a&due_from=2026-01-01&due_to=2026-12-31
func (ic *InstancesController) List(c *gin.Context) {
	filter, ok := ic.parseFilter(c)
	if !ok {
		return
	}

	list, err := ic.store.List(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err, "book instance")
		return
	}

	resp := ListResponse{Kind: ic.reg.Kind, Columns: ic.reg.ListDisplay, Items: make([]ListItem, 0, len(list))}
	for _, bi := range list {
		row, err := admin.Row(ic.reg, bi)
		if err != nil {
			respondInternalError(c, err, "render book instance")
			return
		}
		resp.Items = append(resp.Items, ListItem{ID: bi.ID.String(), Row: row})
	}
	c.JSON(http.StatusOK, resp)
}

func (ic *InstancesController) parseFilter(c *gin.Context) (catalog.InstanceFilter, bool) {
	var filter catalog.InstanceFilter

	if s := c.Query("status"); s != "" {
		status, err := catalog.ParseLoanStatus(s)
		if err != nil {
			respondBadRequest(c, err.Error())
			return filter, false
		}
		filter.Status = status
	}

	bookID, ok := parseOptionalQueryID(c, "book_id")
	if !ok {
		return filter, false
	}
	filter.BookID = bookID

	var err error
	if filter.DueFrom, err = catalog.ParseDate(c.Query("due_from")); err != nil {
		respondBadRequest(c, err.Error())
		return filter, false
	}
	if filter.DueTo, err = catalog.ParseDate(c.Query("due_to")); err != nil {
		respondBadRequest(c, err.Error())
		return filter, false
	}
	return filter, true
}

func (ic *InstancesController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	bi, err := ic.store.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "book instance")
		return
	}
	c.JSON(http.StatusOK, bi)
}

func (ic *InstancesController) Create(c *gin.Context) {
	bi, ok := bindInstance(c)
	if !ok {
		return
	}
	if err := ic.store.Create(c.Request.Context(), bi); err != nil {
		respondStoreError(c, err, "book instance")
		return
	}
	created, err := ic.store.Get(c.Request.Context(), bi.ID)
	if err != nil {
		respondStoreError(c, err, "book instance")
		return
	}
	if ic.history != nil {
		ic.history.LogAddition(c.Request.Context(), ic.reg.Kind, created.ID.String(), catalog.FormatBookInstance(*created))
	}
	respondCreated(c, created)
}

func (ic *InstancesController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	bi, ok := bindInstance(c)
	if !ok {
		return
	}
	bi.ID = id
	if err := ic.store.Update(c.Request.Context(), bi); err != nil {
		respondStoreError(c, err, "book instance")
		return
	}
	updated, err := ic.store.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "book instance")
		return
	}
	if ic.history != nil {
		ic.history.LogChange(c.Request.Context(), ic.reg.Kind, id.String(), catalog.FormatBookInstance(*updated))
	}
	c.JSON(http.StatusOK, updated)
}

func (ic *InstancesController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var repr string
	if ic.history != nil {
		existing, err := ic.store.Get(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err, "book instance")
			return
		}
		repr = catalog.FormatBookInstance(*existing)
	}
	if err := ic.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "book instance")
		return
	}
	if ic.history != nil {
		ic.history.LogDeletion(c.Request.Context(), ic.reg.Kind, id.String(), repr)
	}
	respondSuccess(c, "book instance deleted")
}

// bindInstance decodes an instance body. A blank status is passed through
// so the store can apply its create default or reject it on update.
func bindInstance(c *gin.Context) (*entities.BookInstance, bool) {
	req, ok := bindJSON[instanceRequest](c)
	if !ok {
		return nil, false
	}
	bi := &entities.BookInstance{BookID: req.BookID, Imprint: req.Imprint}
	if req.Status != "" {
		status, err := catalog.ParseLoanStatus(req.Status)
		if err != nil {
			respondBadRequest(c, err.Error())
			return nil, false
		}
		bi.Status = status
	}
	due, err := catalog.ParseDate(req.DueBack)
	if err != nil {
		respondBadRequest(c, err.Error())
		return nil, false
	}
	bi.DueBack = due
	return bi, true
}
