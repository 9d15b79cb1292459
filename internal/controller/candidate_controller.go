package controller

import (
	"errors"
	"strconv"

	"rhello_flow_backend/internal/service"
	"rhello_flow_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CandidateController struct {
	CandidateService *service.CandidateService
}

func NewCandidateController(candidateService *service.CandidateService) *CandidateController {
	return &CandidateController{CandidateService: candidateService}
}

// @Summary Cadastrar candidato
// @Tags candidatos
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CandidateRequest true "dados do candidato"
// @Success 201 {object} util.Response
// @Router /api/candidates [post]
func (c *CandidateController) Create(ctx *gin.Context) {
	var req service.CandidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	candidate, err := c.CandidateService.Create(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, candidate)
}

// @Summary Listar candidatos
// @Tags candidatos
// @Produce json
// @Security ApiKeyAuth
// @Param vagaId query int false "filtrar por vaga"
// @Param search query string false "busca por nome ou e-mail"
// @Param page query int false "página"
// @Param limit query int false "itens por página"
// @Success 200 {object} util.Response
// @Router /api/candidates [get]
func (c *CandidateController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	var vagaID *uint
	if raw := ctx.Query("vagaId"); raw != "" {
		id := util.MustParseUint(raw)
		if id == 0 {
			util.BadRequest(ctx, "vagaId inválido")
			return
		}
		vagaID = &id
	}

	candidates, total, err := c.CandidateService.List(vagaID, ctx.Query("search"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: candidates, Total: total, Page: page, Limit: limit})
}

// @Summary Detalhar candidato
// @Tags candidatos
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do candidato"
// @Success 200 {object} util.Response
// @Router /api/candidates/{id} [get]
func (c *CandidateController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	candidate, err := c.CandidateService.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, candidate)
}

// @Summary Atualizar candidato
// @Tags candidatos
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do candidato"
// @Param body body service.CandidateRequest true "dados do candidato"
// @Success 200 {object} util.Response
// @Router /api/candidates/{id} [put]
func (c *CandidateController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	var req service.CandidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	candidate, err := c.CandidateService.Update(id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, candidate)
}

// @Summary Remover candidato
// @Tags candidatos
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do candidato"
// @Success 200 {object} util.Response
// @Router /api/candidates/{id} [delete]
func (c *CandidateController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	if err := c.CandidateService.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Enviar currículo
// @Tags candidatos
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do candidato"
// @Param file formData file true "arquivo do currículo (pdf, doc, docx)"
// @Success 200 {object} util.Response
// @Router /api/candidates/{id}/cv [post]
func (c *CandidateController) UploadCV(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "arquivo ausente")
		return
	}

	key, err := c.CandidateService.UploadCV(ctx.Request.Context(), id, file)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"cvPath": key})
}

// @Summary URL de download do currículo
// @Tags candidatos
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do candidato"
// @Success 200 {object} util.Response
// @Router /api/candidates/{id}/cv [get]
func (c *CandidateController) CVURL(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	url, err := c.CandidateService.CVURL(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
