package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/memberhub/memberhub/pkg/response"
)

// respondErr writes the envelope for a rule-layer error. The HTTP status stays
// 200; clients dispatch on the envelope code and render the message, which
// names the entity ("affiliate not found").
func respondErr(c *gin.Context, err error) {
	c.JSON(http.StatusOK, response.ErrorMsg[any](response.CodeForError(err), err.Error()))
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, response.ErrorMsg[any](response.APIResponseCodeBadRequest, msg))
}

// idParam parses the named path parameter as an unsigned id. ok=false means
// the bad-request envelope was already written.
func idParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}
