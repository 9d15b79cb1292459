package controller

import (
	"errors"
	"strconv"

	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/internal/service"
	"rhello_flow_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VagaController struct {
	VagaService *service.VagaService
}

func NewVagaController(vagaService *service.VagaService) *VagaController {
	return &VagaController{VagaService: vagaService}
}

// @Summary Abrir vaga
// @Tags vagas
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.VagaRequest true "dados da vaga"
// @Success 201 {object} util.Response
// @Router /api/vagas [post]
func (c *VagaController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.VagaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	vaga, err := c.VagaService.Create(claims.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, vaga)
}

// @Summary Listar vagas
// @Tags vagas
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "aberta, pausada ou encerrada"
// @Param page query int false "página"
// @Param limit query int false "itens por página"
// @Success 200 {object} util.Response
// @Router /api/vagas [get]
func (c *VagaController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	vagas, total, err := c.VagaService.List(model.VagaStatus(ctx.Query("status")), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: vagas, Total: total, Page: page, Limit: limit})
}

// @Summary Detalhar vaga
// @Tags vagas
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID da vaga"
// @Success 200 {object} util.Response
// @Router /api/vagas/{id} [get]
func (c *VagaController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	vaga, err := c.VagaService.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, vaga)
}

// @Summary Atualizar vaga
// @Tags vagas
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID da vaga"
// @Param body body service.VagaRequest true "dados da vaga"
// @Success 200 {object} util.Response
// @Router /api/vagas/{id} [put]
func (c *VagaController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	var req service.VagaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	vaga, err := c.VagaService.Update(id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, vaga)
}

// @Summary Alterar status da vaga
// @Tags vagas
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID da vaga"
// @Param body body object true "{status}"
// @Success 200 {object} util.Response
// @Router /api/vagas/{id}/status [put]
func (c *VagaController) UpdateStatus(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	var body struct {
		Status model.VagaStatus `json:"status" binding:"required,oneof=aberta pausada encerrada"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.VagaService.UpdateStatus(id, body.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"status": body.Status})
}

// @Summary Remover vaga
// @Tags vagas
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID da vaga"
// @Success 200 {object} util.Response
// @Router /api/vagas/{id} [delete]
func (c *VagaController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	if err := c.VagaService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Relatório da vaga
// @Tags vagas
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID da vaga"
// @Success 200 {object} util.Response
// @Router /api/vagas/{id}/report [get]
func (c *VagaController) Report(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	report, err := c.VagaService.Report(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
