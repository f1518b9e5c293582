package api

import (
	"journal/internal/entity"
	"journal/internal/entity/dto"
	"journal/internal/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) AddEntry(entryType entity.EntryType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.EntryInput
		if err := c.ShouldBindJSON(&req); err != nil {
			InvalidPayload(c)
			return
		}
		if req.Type == "" {
			req.Type = entryType
		}
		if err := h.validator.ValidateEntryInput(req); err != nil {
			RespondError(c, err)
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		entry, err := h.entries[entryType].useCases.Add.Execute(ctx, req)
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.EntryDetailResponse{Entry: entry})
	}
}

// dayQuery 按日查询的参数
type dayQuery struct {
	Date string `json:"date" validate:"required,notfuture"`
}

func (h *HTTPHandler) GetEntriesByDate(entryType entity.EntryType) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := dayQuery{Date: strings.TrimSpace(c.Query("date"))}
		if query.Date == "" {
			MissingField(c, "date")
			return
		}
		if err := h.validator.Validate(query); err != nil {
			RespondError(c, err)
			return
		}
		date, err := utils.ParseDate(query.Date)
		if err != nil {
			BadRequest(c, ErrCodeInvalidRequest, "invalid date")
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		entries, err := h.entries[entryType].useCases.GetByDate.Execute(ctx, date)
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.EntryListResponse{Entries: entries})
	}
}

func (h *HTTPHandler) GetEntry(entryType entity.EntryType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := entryID(c)
		if !ok {
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		entry, err := h.entries[entryType].service.GetEntry(ctx, id)
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.EntryDetailResponse{Entry: entry})
	}
}

func (h *HTTPHandler) UpdateEntry(entryType entity.EntryType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := entryID(c)
		if !ok {
			return
		}

		var req dto.EntryUpdateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			InvalidPayload(c)
			return
		}
		if err := h.validator.ValidateEntryUpdate(req, entryType); err != nil {
			RespondError(c, err)
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		entry, err := h.entries[entryType].useCases.Update.Execute(ctx, id, req)
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.EntryDetailResponse{Entry: entry})
	}
}

func (h *HTTPHandler) DeleteEntry(entryType entity.EntryType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := entryID(c)
		if !ok {
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		entry, err := h.entries[entryType].useCases.Delete.Execute(ctx, id)
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.EntryDetailResponse{Entry: entry})
	}
}

func entryID(c *gin.Context) (string, bool) {
	return pathID(c, "entry id")
}

// pathID reads the :id parameter and rejects anything that is not a well-formed id.
func pathID(c *gin.Context, field string) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if !utils.ValidID(id) {
		InvalidID(c, field)
		return "", false
	}
	return id, true
}
