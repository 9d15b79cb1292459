package controller

import (
	"errors"
	"strconv"

	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/internal/service"
	"rhello_flow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TemplateController struct {
	TemplateService *service.TemplateService
}

func NewTemplateController(templateService *service.TemplateService) *TemplateController {
	return &TemplateController{TemplateService: templateService}
}

// @Summary Criar template de scorecard
// @Tags templates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TemplateRequest true "template com critérios"
// @Success 201 {object} util.Response
// @Router /api/templates [post]
func (c *TemplateController) Create(ctx *gin.Context) {
	var req service.TemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	template, err := c.TemplateService.Create(&req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, template)
}

// @Summary Listar templates
// @Tags templates
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "entrevista ou teste_tecnico"
// @Param active query bool false "somente ativos"
// @Param page query int false "página"
// @Param limit query int false "itens por página"
// @Success 200 {object} util.Response
// @Router /api/templates [get]
func (c *TemplateController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	onlyActive := ctx.Query("active") == "true"

	templates, total, err := c.TemplateService.List(model.TemplateType(ctx.Query("type")), onlyActive, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: templates, Total: total, Page: page, Limit: limit})
}

// @Summary Detalhar template
// @Tags templates
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do template"
// @Success 200 {object} util.Response
// @Router /api/templates/{id} [get]
func (c *TemplateController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	template, err := c.TemplateService.GetByID(id)
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, template)
}

// @Summary Atualizar template
// @Tags templates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do template"
// @Param body body service.TemplateRequest true "template com critérios"
// @Success 200 {object} util.Response
// @Router /api/templates/{id} [put]
func (c *TemplateController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	var req service.TemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	template, err := c.TemplateService.Update(id, &req)
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, template)
}

// @Summary Ativar/desativar template
// @Tags templates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do template"
// @Param body body object true "{active}"
// @Success 200 {object} util.Response
// @Router /api/templates/{id}/active [put]
func (c *TemplateController) SetActive(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	var body struct {
		Active bool `json:"active"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.TemplateService.SetActive(id, body.Active); err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"active": body.Active})
}

// @Summary Remover template
// @Tags templates
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do template"
// @Success 200 {object} util.Response
// @Router /api/templates/{id} [delete]
func (c *TemplateController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	if err := c.TemplateService.Delete(id); err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
