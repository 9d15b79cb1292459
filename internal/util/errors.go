package util

import "errors"

var (
	ErrUserNotFound            = errors.New("usuário não encontrado")
	ErrEmailRegistered         = errors.New("este e-mail já está cadastrado")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrTemplateNotFound        = errors.New("template não encontrado")
	ErrTemplateInactive        = errors.New("template inativo")
	ErrTemplateWithoutCriteria = errors.New("template sem critérios cadastrados")
	ErrScorecardNotFound       = errors.New("scorecard não encontrado")
	ErrScorecardIncomplete     = errors.New("existem critérios sem nota")
	ErrRecommendationRequired  = errors.New("selecione uma recomendação antes de enviar")
	ErrAnswerNotFound          = errors.New("resposta não encontrada")
	ErrAnswerAlreadyGraded     = errors.New("resposta já corrigida")
	ErrNotOpenText             = errors.New("apenas questões abertas recebem correção manual")
	ErrInvalidScore            = errors.New("nota deve estar entre 1 e 5")
	ErrTestExpired             = errors.New("link de teste expirado")
	ErrTestAlreadySubmitted    = errors.New("teste já enviado")
	ErrTestNotFound            = errors.New("teste não encontrado")
)
