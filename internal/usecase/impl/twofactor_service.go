package impl

import (
	"context"
	"log/slog"
	"time"

	"bountyhub/config"
	deliverycontext "bountyhub/internal/delivery/context"
	"bountyhub/internal/domain/entity"
	domainerrors "bountyhub/internal/domain/errors"
	"bountyhub/internal/domain/repository"
	"bountyhub/internal/domain/service"
	"bountyhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// twoFactorService implements the TwoFactorUsecase interface.
type twoFactorService struct {
	userRepo        repository.UserRepository
	totpService     service.TOTPService
	qrcodeService   service.QRCodeService
	auditSink       service.AuditSink
	pendingSetupTTL time.Duration
	logger          *slog.Logger
	now             func() time.Time
}

// TwoFactorServiceParams holds dependencies for twoFactorService, injected by Fx.
type TwoFactorServiceParams struct {
	fx.In

	UserRepo      repository.UserRepository
	TOTPService   service.TOTPService
	QRCodeService service.QRCodeService
	AuditSink     service.AuditSink
	Config        *config.Config
	Logger        *slog.Logger
}

// NewTwoFactorService is the constructor for twoFactorService.
func NewTwoFactorService(params TwoFactorServiceParams) usecase.TwoFactorUsecase {
	pendingSetupTTL := 10 * time.Minute
	if params.Config != nil && params.Config.TOTP != nil {
		pendingSetupTTL = params.Config.TOTP.PendingSetupTTL
	}

	return &twoFactorService{
		userRepo:        params.UserRepo,
		totpService:     params.TOTPService,
		qrcodeService:   params.QRCodeService,
		auditSink:       params.AuditSink,
		pendingSetupTTL: pendingSetupTTL,
		logger:          params.Logger,
		now:             time.Now,
	}
}

func (srv *twoFactorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Setup begins enrollment by parking a fresh secret in the pending slot.
// Login behavior is unchanged until Confirm activates it.
func (srv *twoFactorService) Setup(ctx context.Context, userID uuid.UUID) (*usecase.TwoFactorSetupOutput, error) {
	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TwoFactorEnabled {
		return nil, domainerrors.ErrTwoFactorAlreadyEnabled
	}

	secret, err := srv.totpService.GenerateSecret()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate secret")
	}

	expiresAt := srv.now().Add(srv.pendingSetupTTL)
	if err := srv.userRepo.SetPendingTwoFactorSecret(ctx, userID, secret, expiresAt); err != nil {
		return nil, errors.Wrap(err, "failed to store pending secret")
	}

	uri := srv.totpService.ProvisioningURI(secret, user.Email)
	png, err := srv.qrcodeService.GeneratePNG(uri)
	if err != nil {
		// The URI alone is enough to enroll manually.
		srv.log(ctx).Warn("Failed to render provisioning QR code", slog.Any("userID", userID), slog.Any("error", err))
		png = nil
	}

	srv.log(ctx).Info("Two-factor setup started", slog.Any("userID", userID))

	return &usecase.TwoFactorSetupOutput{
		Secret:          secret,
		ProvisioningURI: uri,
		QRCodePNG:       png,
	}, nil
}

// Confirm validates a code against the pending secret and promotes it.
func (srv *twoFactorService) Confirm(ctx context.Context, userID uuid.UUID, code, ipAddress, userAgent string) error {
	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.TwoFactorEnabled {
		return domainerrors.ErrTwoFactorAlreadyEnabled
	}
	if user.PendingTwoFactorSecret == nil {
		return domainerrors.ErrNoPendingTwoFactorSetup
	}
	if user.PendingTwoFactorExpires != nil && !srv.now().Before(*user.PendingTwoFactorExpires) {
		return domainerrors.ErrNoPendingTwoFactorSetup.WrapMessage("pending setup expired")
	}

	if !srv.totpService.Validate(*user.PendingTwoFactorSecret, code) {
		return domainerrors.ErrInvalidTwoFactorCode
	}

	if err := srv.userRepo.PromotePendingTwoFactorSecret(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to promote pending secret")
	}

	srv.auditSink.Record(ctx, &userID, entity.AuditActionTwoFactorEnabled, nil, ipAddress, userAgent)
	srv.log(ctx).Info("Two-factor enabled", slog.Any("userID", userID))

	return nil
}

// Disable turns two-factor off after proving possession of the active secret.
func (srv *twoFactorService) Disable(ctx context.Context, userID uuid.UUID, code, ipAddress, userAgent string) error {
	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TwoFactorEnabled || user.TwoFactorSecret == nil {
		return domainerrors.ErrTwoFactorNotEnabled
	}

	if !srv.totpService.Validate(*user.TwoFactorSecret, code) {
		return domainerrors.ErrInvalidTwoFactorCode
	}

	if err := srv.userRepo.DisableTwoFactor(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to disable two-factor")
	}

	srv.auditSink.Record(ctx, &userID, entity.AuditActionTwoFactorDisabled, nil, ipAddress, userAgent)
	srv.log(ctx).Info("Two-factor disabled", slog.Any("userID", userID))

	return nil
}

func (srv *twoFactorService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}
