package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vendora/vendora/internal/audit"
	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/dberr"
	"github.com/vendora/vendora/internal/platform/sec"
	"github.com/vendora/vendora/internal/platform/validate"
)

const entityType = "member"

const minPasswordLength = 8

type Service struct {
	repo     Repository
	recorder *audit.Recorder
	logger   *slog.Logger
}

func NewService(repo Repository, recorder *audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

func (service *Service) ListMembers(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Member, int, error) {
	return service.repo.ListMembers(context, tenantID, f, limit, offset)
}

func (service *Service) GetMember(context context.Context, tenantID, id int64) (*Member, error) {
	m, err := service.repo.GetMember(context, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return m, nil
}

func (service *Service) GetMemberByEmail(context context.Context, tenantID int64, email string) (*Member, error) {
	m, err := service.repo.GetMemberByEmail(context, tenantID, email)
	if err != nil {
		return nil, notFoundAs(err)
	}
	return m, nil
}

// CreateMember provisions an admin account. The plaintext password is hashed
// here and discarded.
func (service *Service) CreateMember(context context.Context, m *Member, password string) (*Member, error) {
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	if err := validateMember(m, password, true); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetMemberByEmail(context, m.TenantID, m.Email); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Member %s already exists", m.Email))
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}
	m.PasswordHash = hash

	if err := service.repo.CreateMember(context, m); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetMember(context, m.TenantID, m.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("member %d unreadable after create: %w", m.ID, err))
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   m.TenantID,
		EntityType: entityType,
		EntityID:   stored.ID,
		Action:     audit.ActionCreate,
		Changes:    audit.Diff(nil, stored),
	})
	service.logger.Info("member_created",
		slog.Int64("tenant_id", stored.TenantID), slog.String("email", stored.Email))
	return stored, nil
}

// UpdateMember changes profile fields and role. Passwords move only through
// [Service.ChangePassword].
func (service *Service) UpdateMember(context context.Context, tenantID, id int64, m *Member) (*Member, error) {
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	if err := validateMember(m, "", false); err != nil {
		return nil, err
	}

	previous, err := service.repo.GetMember(context, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err)
	}

	if m.Email != previous.Email {
		if _, err := service.repo.GetMemberByEmail(context, tenantID, m.Email); err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Member %s already exists", m.Email))
		}
	}

	m.ID = id
	m.TenantID = tenantID
	if err := service.repo.UpdateMember(context, m); err != nil {
		return nil, err
	}

	stored, err := service.repo.GetMember(context, tenantID, id)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("member %d unreadable after update: %w", id, err))
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionUpdate,
		Changes:    audit.Diff(previous, stored),
	})
	service.logger.Info("member_updated", slog.Int64("member_id", id))
	return stored, nil
}

// ChangePassword rehashes and stores a new password. The audit trail records
// the event, never the value.
func (service *Service) ChangePassword(context context.Context, tenantID, id int64, password string) error {
	validator := &validate.Validator{}
	validator.Required(FieldPassword, password).MinLen(FieldPassword, password, minPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.repo.GetMember(context, tenantID, id); err != nil {
		return notFoundAs(err)
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	if err := service.repo.UpdatePasswordHash(context, tenantID, id, hash); err != nil {
		return notFoundAs(err)
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionUpdate,
	})
	service.logger.Info("member_password_changed", slog.Int64("member_id", id))
	return nil
}

func (service *Service) DeleteMember(context context.Context, tenantID, id int64) error {
	previous, err := service.repo.GetMember(context, tenantID, id)
	if err != nil {
		return notFoundAs(err)
	}

	if err := service.repo.DeleteMember(context, tenantID, id); err != nil {
		return notFoundAs(err)
	}

	service.recorder.Record(context, &audit.Entry{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   id,
		Action:     audit.ActionDelete,
		Changes:    audit.Diff(previous, nil),
	})
	service.logger.Warn("member_deleted",
		slog.Int64("tenant_id", tenantID), slog.String("email", previous.Email))
	return nil
}

func validateMember(m *Member, password string, withPassword bool) error {
	validator := &validate.Validator{}

	validator.Required(FieldEmail, m.Email).
		Email(FieldEmail, m.Email).
		MaxLen(FieldEmail, m.Email, 254)
	validator.Required(FieldDisplayName, m.DisplayName).MaxLen(FieldDisplayName, m.DisplayName, 100)
	validator.OneOf(FieldRole, string(m.Role),
		string(sec.RoleOwner), string(sec.RoleAdmin), string(sec.RoleStaff), string(sec.RoleViewer))
	if withPassword {
		validator.Required(FieldPassword, password).MinLen(FieldPassword, password, minPasswordLength)
	}

	return validator.Err()
}

func notFoundAs(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Member")
	}
	return err
}
