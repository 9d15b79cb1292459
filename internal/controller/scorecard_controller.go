package controller

import (
	"errors"

	"rhello_flow_backend/internal/service"
	"rhello_flow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScorecardController struct {
	ScorecardService    *service.ScorecardService
	ExternalTestService *service.ExternalTestService
}

func NewScorecardController(scorecardService *service.ScorecardService, externalTestService *service.ExternalTestService) *ScorecardController {
	return &ScorecardController{
		ScorecardService:    scorecardService,
		ExternalTestService: externalTestService,
	}
}

// @Summary Enviar avaliação interna
// @Tags scorecards
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitScorecardRequest true "avaliação completa"
// @Success 201 {object} util.Response
// @Router /api/scorecards [post]
func (c *ScorecardController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitScorecardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	scorecard, err := c.ScorecardService.Submit(claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrScorecardIncomplete),
			errors.Is(err, util.ErrRecommendationRequired),
			errors.Is(err, util.ErrTemplateInactive),
			errors.Is(err, util.ErrTemplateWithoutCriteria):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrTemplateNotFound):
			util.NotFound(ctx)
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, scorecard)
}

// @Summary Detalhar scorecard
// @Tags scorecards
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do scorecard"
// @Success 200 {object} util.Response
// @Router /api/scorecards/{id} [get]
func (c *ScorecardController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	detail, err := c.ScorecardService.GetByID(id)
	if err != nil {
		if errors.Is(err, util.ErrScorecardNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary Scorecards de um candidato
// @Tags scorecards
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do candidato"
// @Success 200 {object} util.Response
// @Router /api/candidates/{id}/scorecards [get]
func (c *ScorecardController) ListByCandidate(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	scorecards, err := c.ScorecardService.ListByCandidate(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, scorecards)
}

// @Summary Ranking de scorecards da vaga
// @Tags scorecards
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID da vaga"
// @Success 200 {object} util.Response
// @Router /api/vagas/{id}/scorecards [get]
func (c *ScorecardController) ListByVaga(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	scorecards, err := c.ScorecardService.ListByVaga(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, scorecards)
}

// @Summary Remover scorecard
// @Tags scorecards
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID do scorecard"
// @Success 200 {object} util.Response
// @Router /api/scorecards/{id} [delete]
func (c *ScorecardController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	if err := c.ScorecardService.Delete(id); err != nil {
		if errors.Is(err, util.ErrScorecardNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Emitir link de teste externo
// @Tags testes externos
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.IssueTestRequest true "candidato e template do teste"
// @Success 201 {object} util.Response
// @Router /api/external-tests [post]
func (c *ScorecardController) IssueTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.IssueTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.ExternalTestService.IssueTest(ctx.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTemplateNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTemplateInactive),
			errors.Is(err, util.ErrTemplateWithoutCriteria):
			util.BadRequest(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, resp)
}

// @Summary Corrigir questão aberta
// @Tags testes externos
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID da resposta"
// @Param body body service.GradeAnswerRequest true "nota de 1 a 5"
// @Success 200 {object} util.Response
// @Router /api/answers/{id}/grade [post]
func (c *ScorecardController) GradeAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "id inválido")
		return
	}

	var req service.GradeAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	scorecard, err := c.ExternalTestService.GradeAnswer(id, claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAnswerNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotOpenText),
			errors.Is(err, util.ErrAnswerAlreadyGraded),
			errors.Is(err, util.ErrInvalidScore):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, scorecard)
}
