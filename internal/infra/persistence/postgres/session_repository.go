package postgres

import (
	"context"
	"time"

	"bountyhub/internal/domain/entity"
	"bountyhub/internal/domain/repository"
	"bountyhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the domain.SessionRepository interface using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session record.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)
	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return errors.Wrap(err, "failed to create session")
	}

	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByUserID retrieves all non-expired sessions for a user, newest first.
func (repo *sessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error) {
	var models []model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find sessions by user id")
	}

	sessions := make([]*entity.Session, 0, len(models))
	for i := range models {
		sessions = append(sessions, toSessionDomain(&models[i]))
	}

	return sessions, nil
}

// FindByRefreshTokenHash retrieves the non-expired session holding the hash.
func (repo *sessionRepository) FindByRefreshTokenHash(ctx context.Context, refreshHash string) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("refresh_token_hash = ? AND expires_at > ?", refreshHash, time.Now()).
		First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by refresh token hash")
	}

	return toSessionDomain(&sessionM), nil
}

// UpdateAccessTokenHash swaps the recorded access token hash after a refresh.
func (repo *sessionRepository) UpdateAccessTokenHash(ctx context.Context, id uuid.UUID, accessHash string) error {
	result := repo.db.WithContext(ctx).Model(&model.SessionModel{}).
		Where("id = ?", id).
		Update("token_hash", accessHash)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update session token hash")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// DeleteByTokenHashes removes any session matching either hash. Zero matched
// rows is fine: logout is idempotent.
func (repo *sessionRepository) DeleteByTokenHashes(ctx context.Context, accessHash, refreshHash string) error {
	query := repo.db.WithContext(ctx)
	switch {
	case accessHash != "" && refreshHash != "":
		query = query.Where("token_hash = ? OR refresh_token_hash = ?", accessHash, refreshHash)
	case accessHash != "":
		query = query.Where("token_hash = ?", accessHash)
	case refreshHash != "":
		query = query.Where("refresh_token_hash = ?", refreshHash)
	default:
		return nil
	}

	if err := query.Delete(&model.SessionModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete session by token hashes")
	}

	return nil
}

// DeleteByUserID removes all sessions for a user.
func (repo *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.SessionModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete sessions by user id")
	}

	return nil
}

// DeleteExpired removes all sessions whose expiry has passed.
func (repo *sessionRepository) DeleteExpired(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&model.SessionModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete expired sessions")
	}

	return nil
}

func toSessionDomain(m *model.SessionModel) *entity.Session {
	return &entity.Session{
		ID:               m.ID,
		UserID:           m.UserID,
		TokenHash:        m.TokenHash,
		RefreshTokenHash: m.RefreshTokenHash,
		UserAgent:        m.UserAgent,
		IPAddress:        m.IPAddress,
		ExpiresAt:        m.ExpiresAt,
		CreatedAt:        m.CreatedAt,
	}
}

func fromSessionDomain(s *entity.Session) *model.SessionModel {
	return &model.SessionModel{
		ID:               s.ID,
		UserID:           s.UserID,
		TokenHash:        s.TokenHash,
		RefreshTokenHash: s.RefreshTokenHash,
		UserAgent:        s.UserAgent,
		IPAddress:        s.IPAddress,
		ExpiresAt:        s.ExpiresAt,
	}
}
