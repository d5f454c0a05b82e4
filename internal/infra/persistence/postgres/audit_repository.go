package postgres

import (
	"context"
	"encoding/json"

	"bountyhub/internal/domain/entity"
	"bountyhub/internal/domain/repository"
	"bountyhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// auditRepository implements the domain.AuditRepository interface using GORM.
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository is the constructor for auditRepository.
func NewAuditRepository(db *gorm.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

// Append writes a new audit entry.
func (repo *auditRepository) Append(ctx context.Context, entry *entity.AuditEntry) error {
	auditM, err := fromAuditDomain(entry)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(auditM).Error; err != nil {
		return errors.Wrap(err, "failed to append audit entry")
	}

	entry.CreatedAt = auditM.CreatedAt

	return nil
}

// FindByUserID retrieves entries for one user, newest first.
func (repo *auditRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.AuditEntry, error) {
	var models []model.AuditModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find audit entries by user id")
	}

	return toAuditDomainList(models)
}

// List retrieves entries across all users, newest first.
func (repo *auditRepository) List(ctx context.Context, limit, offset int) ([]*entity.AuditEntry, error) {
	var models []model.AuditModel
	err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list audit entries")
	}

	return toAuditDomainList(models)
}

func toAuditDomainList(models []model.AuditModel) ([]*entity.AuditEntry, error) {
	entries := make([]*entity.AuditEntry, 0, len(models))
	for i := range models {
		entry, err := toAuditDomain(&models[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func toAuditDomain(m *model.AuditModel) (*entity.AuditEntry, error) {
	var details map[string]any
	if len(m.Details) > 0 {
		if err := json.Unmarshal(m.Details, &details); err != nil {
			return nil, errors.Wrap(err, "failed to decode audit details")
		}
	}

	return &entity.AuditEntry{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    entity.AuditAction(m.Action),
		Details:   details,
		IPAddress: m.IPAddress,
		UserAgent: m.UserAgent,
		CreatedAt: m.CreatedAt,
	}, nil
}

func fromAuditDomain(e *entity.AuditEntry) (*model.AuditModel, error) {
	var details []byte
	if e.Details != nil {
		encoded, err := json.Marshal(e.Details)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode audit details")
		}
		details = encoded
	}

	return &model.AuditModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    string(e.Action),
		Details:   details,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
	}, nil
}
