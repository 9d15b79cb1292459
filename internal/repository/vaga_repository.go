package repository

import (
	"rhello_flow_backend/internal/model"

	"gorm.io/gorm"
)

type VagaRepository struct {
	db *gorm.DB
}

func NewVagaRepository(db *gorm.DB) *VagaRepository {
	return &VagaRepository{db: db}
}

func (r *VagaRepository) Create(vaga *model.Vaga) error {
	return r.db.Create(vaga).Error
}

func (r *VagaRepository) FindByID(id uint) (*model.Vaga, error) {
	var vaga model.Vaga
	err := r.db.First(&vaga, id).Error
	if err != nil {
		return nil, err
	}
	return &vaga, nil
}

func (r *VagaRepository) List(status model.VagaStatus, page, limit int) ([]model.Vaga, int64, error) {
	var vagas []model.Vaga
	var total int64

	query := r.db.Model(&model.Vaga{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&vagas).Error
	return vagas, total, err
}

func (r *VagaRepository) Update(vaga *model.Vaga) error {
	return r.db.Save(vaga).Error
}

func (r *VagaRepository) UpdateStatus(id uint, status model.VagaStatus) error {
	return r.db.Model(&model.Vaga{}).Where("id = ?", id).Update("status", status).Error
}

func (r *VagaRepository) Delete(id uint) error {
	return r.db.Delete(&model.Vaga{}, id).Error
}

func (r *VagaRepository) CountByStatus() (map[model.VagaStatus]int64, error) {
	type row struct {
		Status model.VagaStatus
		Count  int64
	}
	var rows []row
	err := r.db.Model(&model.Vaga{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.VagaStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
