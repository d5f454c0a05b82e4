package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"bountyhub/internal/domain/entity"
	"bountyhub/internal/domain/repository"
	"bountyhub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory UserRepository with the same lockout
// bookkeeping semantics as the SQL implementation.
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
	now   func() time.Time
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User), now: time.Now}
	for _, u := range users {
		repo.users[u.ID] = u
	}

	return repo
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepo) RecordLoginFailure(_ context.Context, id uuid.UUID, maxAttempts int, lockFor time.Duration) (*repository.LoginFailureResult, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	user.LoginAttempts++
	if user.LoginAttempts >= maxAttempts {
		lockedUntil := r.now().Add(lockFor)
		user.LockedUntil = &lockedUntil
	}

	result := &repository.LoginFailureResult{Attempts: user.LoginAttempts}
	if user.LockedUntil != nil {
		lockedUntil := *user.LockedUntil
		result.LockedUntil = &lockedUntil
	}

	return result, nil
}

func (r *fakeUserRepo) ResetLoginState(_ context.Context, id uuid.UUID, loginAt time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.LoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &loginAt

	return nil
}

func (r *fakeUserRepo) SetPendingTwoFactorSecret(_ context.Context, id uuid.UUID, secret string, expiresAt time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.PendingTwoFactorSecret = &secret
	user.PendingTwoFactorExpires = &expiresAt

	return nil
}

func (r *fakeUserRepo) PromotePendingTwoFactorSecret(_ context.Context, id uuid.UUID) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if user.PendingTwoFactorSecret == nil {
		return errors.New("no pending secret to promote")
	}

	user.TwoFactorSecret = user.PendingTwoFactorSecret
	user.TwoFactorEnabled = true
	user.PendingTwoFactorSecret = nil
	user.PendingTwoFactorExpires = nil

	return nil
}

func (r *fakeUserRepo) DisableTwoFactor(_ context.Context, id uuid.UUID) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.TwoFactorEnabled = false
	user.TwoFactorSecret = nil
	user.PendingTwoFactorSecret = nil
	user.PendingTwoFactorExpires = nil

	return nil
}

func (r *fakeUserRepo) AddXP(_ context.Context, id uuid.UUID, points int) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.XP += points

	return nil
}

// fakeSessionRepo is an in-memory SessionRepository.
type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	copied := *session
	r.sessions[session.ID] = &copied

	return nil
}

func (r *fakeSessionRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Session, error) {
	var out []*entity.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			copied := *s
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (r *fakeSessionRepo) FindByRefreshTokenHash(_ context.Context, refreshHash string) (*entity.Session, error) {
	for _, s := range r.sessions {
		if s.RefreshTokenHash == refreshHash {
			copied := *s

			return &copied, nil
		}
	}

	return nil, repository.ErrSessionNotFound
}

func (r *fakeSessionRepo) UpdateAccessTokenHash(_ context.Context, id uuid.UUID, accessHash string) error {
	session, ok := r.sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}

	session.TokenHash = accessHash

	return nil
}

func (r *fakeSessionRepo) DeleteByTokenHashes(_ context.Context, accessHash, refreshHash string) error {
	for id, s := range r.sessions {
		if (accessHash != "" && s.TokenHash == accessHash) ||
			(refreshHash != "" && s.RefreshTokenHash == refreshHash) {
			delete(r.sessions, id)
		}
	}

	return nil
}

func (r *fakeSessionRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}

	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) error {
	now := time.Now()
	for id, s := range r.sessions {
		if s.ExpiresAt.Before(now) {
			delete(r.sessions, id)
		}
	}

	return nil
}

// fakeProgramRepo is an in-memory ProgramRepository.
type fakeProgramRepo struct {
	programs    map[uuid.UUID]*entity.Program
	enrollments []*entity.Enrollment
}

func newFakeProgramRepo(programs ...*entity.Program) *fakeProgramRepo {
	repo := &fakeProgramRepo{programs: make(map[uuid.UUID]*entity.Program)}
	for _, p := range programs {
		repo.programs[p.ID] = p
	}

	return repo
}

func (r *fakeProgramRepo) Create(_ context.Context, program *entity.Program) error {
	copied := *program
	r.programs[program.ID] = &copied

	return nil
}

func (r *fakeProgramRepo) Update(_ context.Context, program *entity.Program) error {
	if _, ok := r.programs[program.ID]; !ok {
		return repository.ErrProgramNotFound
	}
	copied := *program
	r.programs[program.ID] = &copied

	return nil
}

func (r *fakeProgramRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Program, error) {
	program, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrProgramNotFound
	}
	copied := *program

	return &copied, nil
}

func (r *fakeProgramRepo) FindByCompanyID(_ context.Context, companyID uuid.UUID) ([]*entity.Program, error) {
	var out []*entity.Program
	for _, p := range r.programs {
		if p.CompanyID == companyID {
			copied := *p
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (r *fakeProgramRepo) ListActive(_ context.Context) ([]*entity.Program, error) {
	var out []*entity.Program
	for _, p := range r.programs {
		if p.Status == entity.ProgramStatusActive {
			copied := *p
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (r *fakeProgramRepo) CreateEnrollment(_ context.Context, enrollment *entity.Enrollment) error {
	if _, ok := r.programs[enrollment.ProgramID]; !ok {
		return repository.ErrProgramNotFound
	}
	for _, e := range r.enrollments {
		if e.ProgramID == enrollment.ProgramID && e.ResearcherID == enrollment.ResearcherID {
			return repository.ErrEnrollmentExists
		}
	}

	copied := *enrollment
	r.enrollments = append(r.enrollments, &copied)

	return nil
}

func (r *fakeProgramRepo) IsEnrolled(_ context.Context, programID, researcherID uuid.UUID) (bool, error) {
	for _, e := range r.enrollments {
		if e.ProgramID == programID && e.ResearcherID == researcherID {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeProgramRepo) FindEnrollmentsByProgramID(_ context.Context, programID uuid.UUID) ([]*entity.Enrollment, error) {
	var out []*entity.Enrollment
	for _, e := range r.enrollments {
		if e.ProgramID == programID {
			copied := *e
			out = append(out, &copied)
		}
	}

	return out, nil
}

// fakeReportRepo is an in-memory ReportRepository.
type fakeReportRepo struct {
	reports map[uuid.UUID]*entity.Report
}

func newFakeReportRepo(reports ...*entity.Report) *fakeReportRepo {
	repo := &fakeReportRepo{reports: make(map[uuid.UUID]*entity.Report)}
	for _, rep := range reports {
		repo.reports[rep.ID] = rep
	}

	return repo
}

func (r *fakeReportRepo) Create(_ context.Context, report *entity.Report) error {
	copied := *report
	r.reports[report.ID] = &copied

	return nil
}

func (r *fakeReportRepo) Update(_ context.Context, report *entity.Report) error {
	if _, ok := r.reports[report.ID]; !ok {
		return repository.ErrReportNotFound
	}
	copied := *report
	r.reports[report.ID] = &copied

	return nil
}

func (r *fakeReportRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, repository.ErrReportNotFound
	}
	copied := *report

	return &copied, nil
}

func (r *fakeReportRepo) FindByResearcherID(_ context.Context, researcherID uuid.UUID) ([]*entity.Report, error) {
	var out []*entity.Report
	for _, rep := range r.reports {
		if rep.ResearcherID == researcherID {
			copied := *rep
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (r *fakeReportRepo) FindByProgramID(_ context.Context, programID uuid.UUID) ([]*entity.Report, error) {
	var out []*entity.Report
	for _, rep := range r.reports {
		if rep.ProgramID == programID {
			copied := *rep
			out = append(out, &copied)
		}
	}

	return out, nil
}

// fakeTxManager runs the function directly against the shared fakes, so state
// changes inside a "transaction" are visible to the test afterwards.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

type fakeRepoFactory struct {
	userRepo    *fakeUserRepo
	sessionRepo *fakeSessionRepo
	programRepo *fakeProgramRepo
	reportRepo  *fakeReportRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository       { return f.userRepo }
func (f *fakeRepoFactory) SessionRepo() repository.SessionRepository { return f.sessionRepo }
func (f *fakeRepoFactory) ProgramRepo() repository.ProgramRepository { return f.programRepo }
func (f *fakeRepoFactory) ReportRepo() repository.ReportRepository   { return f.reportRepo }

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// fakeHasher swaps bcrypt for a reversible marker so tests control matching.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("hash mismatch")
	}

	return nil
}

// fakeTokenService issues predictable tokens and verifies only what it issued.
type fakeTokenService struct {
	issued    map[string]*service.TokenClaims
	refreshed map[string]*service.TokenClaims
	counter   int
	expiresAt time.Time
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{
		issued:    make(map[string]*service.TokenClaims),
		refreshed: make(map[string]*service.TokenClaims),
		expiresAt: time.Now().Add(24 * time.Hour),
	}
}

func (s *fakeTokenService) claimsFor(user *entity.User) *service.TokenClaims {
	return &service.TokenClaims{UserID: user.ID, Email: user.Email, Role: user.Role}
}

func (s *fakeTokenService) IssueTokens(user *entity.User, _ bool) (*service.TokenPair, error) {
	s.counter++
	access := fmt.Sprintf("access-%d", s.counter)
	refresh := fmt.Sprintf("refresh-%d", s.counter)
	s.issued[access] = s.claimsFor(user)
	s.refreshed[refresh] = s.claimsFor(user)

	return &service.TokenPair{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpiresAt: s.expiresAt,
	}, nil
}

func (s *fakeTokenService) IssueAccessToken(user *entity.User, _ bool) (string, time.Time, error) {
	s.counter++
	access := fmt.Sprintf("access-%d", s.counter)
	s.issued[access] = s.claimsFor(user)

	return access, s.expiresAt, nil
}

func (s *fakeTokenService) VerifyAccessToken(token string) (*service.TokenClaims, error) {
	claims, ok := s.issued[token]
	if !ok {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (s *fakeTokenService) VerifyRefreshToken(token string) (*service.TokenClaims, error) {
	claims, ok := s.refreshed[token]
	if !ok {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// fakeTOTP accepts a single code for a single secret.
type fakeTOTP struct {
	secret    string
	validCode string
}

func (s *fakeTOTP) GenerateSecret() (string, error) {
	return s.secret, nil
}

func (s *fakeTOTP) ProvisioningURI(secret, accountName string) string {
	return "otpauth://totp/BountyHub:" + accountName + "?secret=" + secret
}

func (s *fakeTOTP) Validate(secret, code string) bool {
	return secret == s.secret && code == s.validCode
}

// fakeQRCode renders nothing useful; failure mode is switchable.
type fakeQRCode struct {
	fail bool
}

func (s *fakeQRCode) GeneratePNG(content string) ([]byte, error) {
	if s.fail {
		return nil, errors.New("render failed")
	}

	return []byte("png:" + content), nil
}

type auditRecord struct {
	userID  *uuid.UUID
	action  entity.AuditAction
	details map[string]any
}

// fakeAuditSink collects events for assertion.
type fakeAuditSink struct {
	records []auditRecord
}

func (s *fakeAuditSink) Record(_ context.Context, userID *uuid.UUID, action entity.AuditAction, details map[string]any, _, _ string) {
	s.records = append(s.records, auditRecord{userID: userID, action: action, details: details})
}

func (s *fakeAuditSink) actions() []entity.AuditAction {
	out := make([]entity.AuditAction, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.action)
	}

	return out
}
