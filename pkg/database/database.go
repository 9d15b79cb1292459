package database

import (
	"fmt"
	"log"
	"rhello_flow_backend/internal/config"
	"rhello_flow_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Candidate{},
		&model.Vaga{},
		&model.ScorecardTemplate{},
		&model.ScorecardCriterion{},
		&model.Scorecard{},
		&model.ScorecardAnswer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// template padrão de entrevista, criado apenas em banco vazio
	var count int64
	db.Model(&model.ScorecardTemplate{}).Count(&count)
	if count == 0 {
		tpl := &model.ScorecardTemplate{
			Name:        "Entrevista padrão",
			Description: "Template inicial de entrevista técnica e comportamental",
			Type:        model.TemplateEntrevista,
			Active:      true,
		}
		if err := db.Create(tpl).Error; err == nil {
			defaults := []model.ScorecardCriterion{
				{TemplateID: tpl.ID, Name: "Domínio técnico", Category: model.CategoryHardSkills, Weight: 40, QuestionType: model.QuestionRating, Order: 1},
				{TemplateID: tpl.ID, Name: "Comunicação", Category: model.CategorySoftSkills, Weight: 20, QuestionType: model.QuestionRating, Order: 2},
				{TemplateID: tpl.ID, Name: "Experiência prévia", Category: model.CategoryExperiencia, Weight: 20, QuestionType: model.QuestionRating, Order: 3},
				{TemplateID: tpl.ID, Name: "Fit cultural", Category: model.CategoryFitCultural, Weight: 20, QuestionType: model.QuestionRating, Order: 4},
			}
			for _, c := range defaults {
				db.Create(&c)
			}
		}
	}

	return db, nil
}
