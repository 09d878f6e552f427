package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mapprotocol/compass-verifier/internal/constant"
	"github.com/mapprotocol/compass-verifier/internal/expose/service"
	"github.com/mapprotocol/compass-verifier/internal/record"
	"github.com/mapprotocol/compass-verifier/internal/stream"
	"github.com/pkg/errors"
)

type Expose struct {
	verifySrv *service.VerifySrv
}

func New(srv *service.VerifySrv) *Expose {
	return &Expose{verifySrv: srv}
}

// Register mounts the routes on g.
func (e *Expose) Register(g gin.IRouter) {
	g.POST("/verify", e.Verify)
	g.GET("/verify/:id", e.Record)
	g.GET("/events", e.Events)
}

func (e *Expose) Verify(c *gin.Context) {
	var req stream.VerifyOfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Error2Response(http.StatusBadRequest, err))
		return
	}

	ret, err := e.verifySrv.Verify(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, Error2Response(http.StatusBadRequest, err))
		return
	}

	c.JSON(http.StatusOK, Success(ret))
}

func (e *Expose) Record(c *gin.Context) {
	ret, err := e.verifySrv.Record(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, Success(ret))
	case errors.Is(err, record.ErrNotFound), errors.Is(err, service.ErrNoStore):
		c.JSON(http.StatusNotFound, Error2Response(http.StatusNotFound, err))
	default:
		c.JSON(http.StatusInternalServerError, Error2Response(http.StatusInternalServerError, err))
	}
}

func (e *Expose) Events(c *gin.Context) {
	c.JSON(http.StatusOK, Success(e.verifySrv.Events()))
}

func Error2Response(code int, err error) interface{} {
	if errors.Is(err, constant.ErrUnknownEvent) {
		code = http.StatusBadRequest
	}
	return stream.CommonResp{
		Code:    code,
		Message: err.Error(),
	}
}

func Success(data interface{}) interface{} {
	return stream.CommonResp{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	}
}
