package repository

import (
	"rhello_flow_backend/internal/model"

	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) Create(candidate *model.Candidate) error {
	return r.db.Create(candidate).Error
}

func (r *CandidateRepository) FindByID(id uint) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.db.First(&candidate, id).Error
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

// List filtra por vaga e busca textual em nome/e-mail, paginado.
func (r *CandidateRepository) List(vagaID *uint, search string, page, limit int) ([]model.Candidate, int64, error) {
	var candidates []model.Candidate
	var total int64

	query := r.db.Model(&model.Candidate{})
	if vagaID != nil {
		query = query.Where("vaga_id = ?", *vagaID)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&candidates).Error
	return candidates, total, err
}

func (r *CandidateRepository) Update(candidate *model.Candidate) error {
	return r.db.Save(candidate).Error
}

func (r *CandidateRepository) Delete(id uint) error {
	return r.db.Delete(&model.Candidate{}, id).Error
}

func (r *CandidateRepository) UpdateCVPath(id uint, path string) error {
	return r.db.Model(&model.Candidate{}).Where("id = ?", id).Update("cv_path", path).Error
}
