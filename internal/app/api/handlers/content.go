package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memberhub/memberhub/internal/app/api/middleware"
	contentsvc "github.com/memberhub/memberhub/internal/app/service/content"
	"github.com/memberhub/memberhub/pkg/response"
)

// callerID adapts the optional-auth context for the gating rules: nil for
// anonymous callers.
func callerID(c *gin.Context) *uint {
	if id, ok := middleware.CallerUserID(c); ok {
		return &id
	}
	return nil
}

// @Summary      List visible content
// @Description  Published content the caller may see, newest first. Anonymous callers see ungated content only.
// @Tags         Content
// @Produce      json
// @Success      200  {object}  handlers.RespContentList
// @Router       /api/v1/content [get]
func ApiListContent(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListVisible(c.Request.Context(), callerID(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

// @Summary      Get content
// @Description  Missing and invisible content are both reported as not found.
// @Tags         Content
// @Produce      json
// @Param        id path int true "Content ID"
// @Success      200  {object}  handlers.RespContent
// @Router       /api/v1/content/{id} [get]
func ApiGetContent(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		item, err := svc.GetVisible(c.Request.Context(), id, callerID(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		if item == nil {
			c.JSON(http.StatusOK, response.ErrorMsg[any](response.APIResponseCodeNotFound, "content not found"))
			return
		}
		c.JSON(http.StatusOK, response.OKT(item))
	}
}

// @Summary      Create content (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body content.CreateRequest true "Content definition"
// @Success      200  {object}  handlers.RespContent
// @Router       /api/v1/admin/content [post]
func ApiCreateContent(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contentsvc.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		item, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(item))
	}
}

// @Summary      Update content (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Content ID"
// @Param        request body content.Update true "Content update"
// @Success      200  {object}  handlers.RespContent
// @Router       /api/v1/admin/content/{id} [patch]
func ApiUpdateContent(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var update contentsvc.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		item, err := svc.UpdateContent(c.Request.Context(), id, &update)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(item))
	}
}

// @Summary      Delete content (Admin)
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Content ID"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/content/{id} [delete]
func ApiDeleteContent(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// @Summary      List all content (Admin)
// @Description  Every row regardless of publication or gating.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespContentList
// @Router       /api/v1/admin/content [get]
func ApiListAllContent(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListAll(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

func RegisterContentRoutes(optional gin.IRouter, admin gin.IRouter, svc *contentsvc.Service) {
	optional.GET("/content", ApiListContent(svc))
	optional.GET("/content/:id", ApiGetContent(svc))
	admin.GET("/content", ApiListAllContent(svc))
	admin.POST("/content", ApiCreateContent(svc))
	admin.PATCH("/content/:id", ApiUpdateContent(svc))
	admin.DELETE("/content/:id", ApiDeleteContent(svc))
}
