package controller

import (
	"errors"

	"rhello_flow_backend/internal/service"
	"rhello_flow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ExternalTestController expõe as rotas públicas do teste, acessadas pelo
// candidato via token, sem autenticação.
type ExternalTestController struct {
	ExternalTestService *service.ExternalTestService
}

func NewExternalTestController(externalTestService *service.ExternalTestService) *ExternalTestController {
	return &ExternalTestController{ExternalTestService: externalTestService}
}

// @Summary Visualizar teste pelo token
// @Tags testes externos
// @Produce json
// @Param token path string true "token do link"
// @Success 200 {object} util.Response
// @Router /api/external-tests/{token} [get]
func (c *ExternalTestController) Get(ctx *gin.Context) {
	view, err := c.ExternalTestService.GetByToken(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTestExpired):
			util.Error(ctx, 410, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// @Summary Enviar respostas do teste
// @Tags testes externos
// @Accept json
// @Produce json
// @Param token path string true "token do link"
// @Param body body service.SubmitTestRequest true "respostas do candidato"
// @Success 200 {object} util.Response
// @Router /api/external-tests/{token}/submit [post]
func (c *ExternalTestController) Submit(ctx *gin.Context) {
	var req service.SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	scorecard, err := c.ExternalTestService.SubmitAnswers(ctx.Request.Context(), ctx.Param("token"), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTestExpired):
			util.Error(ctx, 410, err.Error())
		case errors.Is(err, util.ErrTestAlreadySubmitted):
			util.Error(ctx, 409, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	// o candidato não vê o próprio resultado, apenas a confirmação
	util.Success(ctx, gin.H{"submittedAt": scorecard.SubmittedAt})
}
