package http

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	auditRepo "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/services"
)

// maxImportBytes bounds the size of an import document.
const maxImportBytes = 4 << 20

type HistoryResponse struct {
	Entries []entities.ChangeEntry `json:"entries"`
	Total   int64                  `json:"total"`
}

// History lists recorded edits, most recent first:
//
//	GET /admin/api/history?kind=book&object_id=7&action=change&limit=20&offset=0
func (ac *AdminController) History(c *gin.Context) {
	filter := auditRepo.Filter{
		Kind:     c.Query("kind"),
		ObjectID: c.Query("object_id"),
		Action:   entities.ChangeAction(c.Query("action")),
	}
	var ok bool
	if filter.Limit, ok = parseOptionalInt(c, "limit"); !ok {
		return
	}
	if filter.Offset, ok = parseOptionalInt(c, "offset"); !ok {
		return
	}

	entries, total, err := ac.history.History(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err, "history")
		return
	}
	if entries == nil {
		entries = []entities.ChangeEntry{}
	}
	c.JSON(http.StatusOK, HistoryResponse{Entries: entries, Total: total})
}

// Import loads a catalog document. Records created before a failure are
// kept, so a failed import may leave a partial catalog behind.
func (ac *AdminController) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes+1))
	if err != nil {
		respondBadRequest(c, "failed to read request body")
		return
	}
	if len(raw) > maxImportBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "import document is too large", codeValidation)
		return
	}

	var payloadFile string
	if ac.auditor != nil && ac.auditor.Enabled() {
		if payloadFile, err = ac.auditor.SavePayload(raw); err != nil {
			log.Printf("Failed to save import payload: %v", err)
		}
	}

	var result services.ImportResult
	doc, err := services.DecodeCatalogImport(bytes.NewReader(raw))
	if err == nil {
		result, err = services.NewImportService(ac.stores).Import(c.Request.Context(), doc)
	}
	if ac.history != nil {
		ac.history.LogImport(c.Request.Context(), payloadFile, result.Books, result.Instances, err)
	}
	if err != nil {
		respondStoreError(c, err, "catalog import")
		return
	}
	respondCreated(c, result)
}

func parseOptionalInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}
