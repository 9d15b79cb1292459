package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/internal/repository"
	"rhello_flow_backend/internal/util"

	"gorm.io/gorm"
)

type TemplateService struct {
	templateRepo *repository.TemplateRepository
}

func NewTemplateService(templateRepo *repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

type CriterionRequest struct {
	Name         string                  `json:"name" binding:"required,min=2,max=150"`
	Description  string                  `json:"description"`
	Category     model.CriterionCategory `json:"category" binding:"omitempty,oneof=hard_skills soft_skills experiencia fit_cultural outros"`
	Weight       int                     `json:"weight" binding:"required,min=1,max=100"`
	QuestionType model.QuestionType      `json:"questionType" binding:"omitempty,oneof=rating open_text multiple_choice"`
	Order        int                     `json:"order"`
	Options      []model.CriterionOption `json:"options"`
}

type TemplateRequest struct {
	Name        string             `json:"name" binding:"required,min=2,max=150"`
	Description string             `json:"description"`
	Type        model.TemplateType `json:"type" binding:"omitempty,oneof=entrevista teste_tecnico"`
	Criteria    []CriterionRequest `json:"criteria" binding:"required,min=1,dive"`
}

// buildCriteria valida e converte os critérios do request. Questões de
// múltipla escolha exigem pelo menos duas alternativas e exatamente uma
// correta.
func buildCriteria(reqs []CriterionRequest) ([]model.ScorecardCriterion, error) {
	criteria := make([]model.ScorecardCriterion, 0, len(reqs))
	for i, cr := range reqs {
		questionType := cr.QuestionType
		if questionType == "" {
			questionType = model.QuestionRating
		}
		category := cr.Category
		if category == "" {
			category = model.CategoryOutros
		}

		var rawOptions json.RawMessage
		if questionType == model.QuestionMultipleChoice {
			if len(cr.Options) < 2 {
				return nil, fmt.Errorf("critério %q: múltipla escolha exige ao menos 2 alternativas", cr.Name)
			}
			correct := 0
			for _, opt := range cr.Options {
				if opt.IsCorrect {
					correct++
				}
			}
			if correct != 1 {
				return nil, fmt.Errorf("critério %q: múltipla escolha exige exatamente 1 alternativa correta", cr.Name)
			}
			encoded, err := json.Marshal(cr.Options)
			if err != nil {
				return nil, err
			}
			rawOptions = encoded
		} else if len(cr.Options) > 0 {
			return nil, fmt.Errorf("critério %q: alternativas só se aplicam a múltipla escolha", cr.Name)
		}

		order := cr.Order
		if order == 0 {
			order = i + 1
		}

		criteria = append(criteria, model.ScorecardCriterion{
			Name:         cr.Name,
			Description:  cr.Description,
			Category:     category,
			Weight:       cr.Weight,
			QuestionType: questionType,
			Order:        order,
			Options:      rawOptions,
		})
	}
	return criteria, nil
}

func (s *TemplateService) Create(req *TemplateRequest) (*model.ScorecardTemplate, error) {
	criteria, err := buildCriteria(req.Criteria)
	if err != nil {
		return nil, err
	}

	templateType := req.Type
	if templateType == "" {
		templateType = model.TemplateEntrevista
	}

	template := &model.ScorecardTemplate{
		Name:        req.Name,
		Description: req.Description,
		Type:        templateType,
		Active:      true,
		Criteria:    criteria,
	}
	if err := s.templateRepo.Create(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) GetByID(id uint) (*model.ScorecardTemplate, error) {
	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) List(templateType model.TemplateType, onlyActive bool, page, limit int) ([]model.ScorecardTemplate, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.templateRepo.List(templateType, onlyActive, page, limit)
}

func (s *TemplateService) Update(id uint, req *TemplateRequest) (*model.ScorecardTemplate, error) {
	template, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	criteria, err := buildCriteria(req.Criteria)
	if err != nil {
		return nil, err
	}

	template.Name = req.Name
	template.Description = req.Description
	if req.Type != "" {
		template.Type = req.Type
	}
	template.Criteria = criteria

	if err := s.templateRepo.Update(template); err != nil {
		return nil, err
	}
	return s.templateRepo.FindByID(id)
}

func (s *TemplateService) SetActive(id uint, active bool) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.templateRepo.SetActive(id, active)
}

func (s *TemplateService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.templateRepo.Delete(id)
}
