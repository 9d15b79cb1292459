package repository

import (
	"rhello_flow_backend/internal/model"

	"gorm.io/gorm"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create grava o template e seus critérios numa única transação.
func (r *TemplateRepository) Create(template *model.ScorecardTemplate) error {
	return r.db.Create(template).Error
}

// FindByID carrega o template com os critérios ordenados.
func (r *TemplateRepository) FindByID(id uint) (*model.ScorecardTemplate, error) {
	var template model.ScorecardTemplate
	err := r.db.Preload("Criteria", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` ASC, id ASC")
	}).First(&template, id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepository) List(templateType model.TemplateType, onlyActive bool, page, limit int) ([]model.ScorecardTemplate, int64, error) {
	var templates []model.ScorecardTemplate
	var total int64

	query := r.db.Model(&model.ScorecardTemplate{})
	if templateType != "" {
		query = query.Where("type = ?", templateType)
	}
	if onlyActive {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Criteria", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` ASC, id ASC")
	}).Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&templates).Error
	return templates, total, err
}

// Update substitui os critérios do template pelos informados.
func (r *TemplateRepository) Update(template *model.ScorecardTemplate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", template.ID).Delete(&model.ScorecardCriterion{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(template).Error
	})
}

func (r *TemplateRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&model.ScorecardTemplate{}).Where("id = ?", id).Update("active", active).Error
}

func (r *TemplateRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&model.ScorecardCriterion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ScorecardTemplate{}, id).Error
	})
}

func (r *TemplateRepository) FindCriterion(id uint) (*model.ScorecardCriterion, error) {
	var criterion model.ScorecardCriterion
	err := r.db.First(&criterion, id).Error
	if err != nil {
		return nil, err
	}
	return &criterion, nil
}
