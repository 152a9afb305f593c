package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sjperalta/clientpulse-api/internal/models"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	FindAll(ctx context.Context) ([]models.Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) FindAll(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&clients).Error
	return clients, err
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// VisitRepository defines the interface for business visit data access
type VisitRepository interface {
	FindAll(ctx context.Context) ([]models.BusinessVisit, error)
}

type visitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) FindAll(ctx context.Context) ([]models.BusinessVisit, error) {
	var visits []models.BusinessVisit
	err := r.db.WithContext(ctx).
		Preload("Client").
		Order("created_at DESC").
		Find(&visits).Error
	return visits, err
}

// GoalRepository defines the interface for goal data access
type GoalRepository interface {
	FindAll(ctx context.Context) ([]models.Goal, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) FindAll(ctx context.Context) ([]models.Goal, error) {
	var goals []models.Goal
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&goals).Error
	return goals, err
}
