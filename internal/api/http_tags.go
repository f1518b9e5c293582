package api

import (
	"journal/internal/entity/dto"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) ListTags(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	tags, err := h.tags.GetAll.Execute(ctx)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TagListResponse{Tags: tags})
}

func (h *HTTPHandler) CreateTag(c *gin.Context) {
	var req dto.TagInput
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		RespondError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	tag, err := h.tags.Add.Execute(ctx, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TagDetailResponse{Tag: tag})
}

func (h *HTTPHandler) GetTag(c *gin.Context) {
	id, ok := pathID(c, "tag id")
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	tag, err := h.tagService.GetTag(ctx, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TagDetailResponse{Tag: tag})
}

func (h *HTTPHandler) UpdateTag(c *gin.Context) {
	id, ok := pathID(c, "tag id")
	if !ok {
		return
	}

	var req dto.TagUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		RespondError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	tag, err := h.tags.Update.Execute(ctx, id, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TagDetailResponse{Tag: tag})
}

// DeleteTag 删除标签并从所有条目中移除其引用，返回被删除的标签
func (h *HTTPHandler) DeleteTag(c *gin.Context) {
	id, ok := pathID(c, "tag id")
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	tag, err := h.tags.Delete.Execute(ctx, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TagDetailResponse{Tag: tag})
}
