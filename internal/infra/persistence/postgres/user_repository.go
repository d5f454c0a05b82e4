package postgres

import (
	"context"
	"database/sql"
	"time"

	"bountyhub/internal/domain/entity"
	domainerrors "bountyhub/internal/domain/errors"
	"bountyhub/internal/domain/repository"
	"bountyhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their lowercased email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyRegistered
		}

		return errors.Wrap(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update persists changes to an existing user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(userM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// RecordLoginFailure bumps the failure counter and arms the lockout in one
// statement, so concurrent failures against the same account each see a
// distinct counter value and the lock engages exactly at the threshold.
func (repo *userRepository) RecordLoginFailure(ctx context.Context, id uuid.UUID, maxAttempts int, lockFor time.Duration) (*repository.LoginFailureResult, error) {
	lockUntil := time.Now().Add(lockFor)

	var attempts int
	var lockedUntil sql.NullTime
	row := repo.db.WithContext(ctx).Raw(`
		UPDATE users
		SET login_attempts = login_attempts + 1,
		    locked_until = CASE WHEN login_attempts + 1 >= ? THEN ? ELSE locked_until END,
		    updated_at = NOW()
		WHERE id = ?
		RETURNING login_attempts, locked_until`,
		maxAttempts, lockUntil, id,
	).Row()
	if err := row.Scan(&attempts, &lockedUntil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to record login failure")
	}

	result := &repository.LoginFailureResult{Attempts: attempts}
	if lockedUntil.Valid {
		result.LockedUntil = &lockedUntil.Time
	}

	return result, nil
}

// ResetLoginState clears failure bookkeeping after a successful login.
func (repo *userRepository) ResetLoginState(ctx context.Context, id uuid.UUID, loginAt time.Time) error {
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"login_attempts": 0,
			"locked_until":   nil,
			"last_login_at":  loginAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to reset login state")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SetPendingTwoFactorSecret parks a secret awaiting confirmation.
func (repo *userRepository) SetPendingTwoFactorSecret(ctx context.Context, id uuid.UUID, secret string, expiresAt time.Time) error {
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"pending_two_factor_secret":  secret,
			"pending_two_factor_expires": expiresAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set pending two-factor secret")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// PromotePendingTwoFactorSecret activates the pending secret. The guard on
// pending_two_factor_secret keeps a stale Confirm from enabling with nothing.
func (repo *userRepository) PromotePendingTwoFactorSecret(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Exec(`
		UPDATE users
		SET two_factor_secret = pending_two_factor_secret,
		    two_factor_enabled = TRUE,
		    pending_two_factor_secret = NULL,
		    pending_two_factor_expires = NULL,
		    updated_at = NOW()
		WHERE id = ? AND pending_two_factor_secret IS NOT NULL`, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to promote pending two-factor secret")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// DisableTwoFactor clears all two-factor state.
func (repo *userRepository) DisableTwoFactor(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"two_factor_enabled":         false,
			"two_factor_secret":          nil,
			"pending_two_factor_secret":  nil,
			"pending_two_factor_expires": nil,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to disable two-factor")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// AddXP credits reputation points to a user.
func (repo *userRepository) AddXP(ctx context.Context, id uuid.UUID, points int) error {
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("xp", gorm.Expr("xp + ?", points))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to add xp")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// toUserDomain maps the persistence model back to a pure domain entity.
func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:                      m.ID,
		Email:                   m.Email,
		Name:                    m.Name,
		PasswordHash:            m.PasswordHash,
		Role:                    entity.Role(m.Role),
		TwoFactorEnabled:        m.TwoFactorEnabled,
		TwoFactorSecret:         m.TwoFactorSecret,
		PendingTwoFactorSecret:  m.PendingTwoFactorSecret,
		PendingTwoFactorExpires: m.PendingTwoFactorExpires,
		LoginAttempts:           m.LoginAttempts,
		LockedUntil:             m.LockedUntil,
		LastLoginAt:             m.LastLoginAt,
		XP:                      m.XP,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}

// fromUserDomain maps a domain entity to its persistence model.
func fromUserDomain(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:                      u.ID,
		Email:                   u.Email,
		Name:                    u.Name,
		PasswordHash:            u.PasswordHash,
		Role:                    string(u.Role),
		TwoFactorEnabled:        u.TwoFactorEnabled,
		TwoFactorSecret:         u.TwoFactorSecret,
		PendingTwoFactorSecret:  u.PendingTwoFactorSecret,
		PendingTwoFactorExpires: u.PendingTwoFactorExpires,
		LoginAttempts:           u.LoginAttempts,
		LockedUntil:             u.LockedUntil,
		LastLoginAt:             u.LastLoginAt,
		XP:                      u.XP,
	}
}
