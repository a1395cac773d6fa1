package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/repositories"
	"github.com/railway_station/pkg/metrics"
	"github.com/railway_station/pkg/utils"
)

// PasswordHasher 由安全层提供的密码哈希实现
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// SeedAccount 启动时预置的账号，不经过注册校验
type SeedAccount struct {
	Username string
	Password string
	Email    string
	Phone    string
	Role     models.Role
}

// UserService 定义了用户服务的接口
type UserService interface {
	Register(ctx context.Context, input models.RegistrationInput) (*models.User, error)
	EnsureUser(ctx context.Context, account SeedAccount) (bool, error)
	AuthenticateLookup(ctx context.Context, username string) (*models.UserCredentials, error)
	Exists(ctx context.Context, username string) (bool, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, targetID int64, newRole models.Role, actingUsername string) error
}

// userService 是 UserService 的实现
type userService struct {
	repo   repositories.UserRepository
	hasher PasswordHasher
}

// NewUserService 创建一个新的 userService 实例
func NewUserService(repo repositories.UserRepository, hasher PasswordHasher) UserService {
	return &userService{repo: repo, hasher: hasher}
}

func mapUserRepoError(err error, input models.RegistrationInput) error {
	switch {
	case errors.Is(err, repositories.ErrRecordNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrUsernameConflict):
		return &DuplicateKeyError{Field: "username", Value: input.Username}
	case errors.Is(err, repositories.ErrEmailConflict):
		return &DuplicateKeyError{Field: "email", Value: input.Email}
	case errors.Is(err, repositories.ErrPhoneConflict):
		return &DuplicateKeyError{Field: "phone", Value: input.Phone}
	case errors.Is(err, repositories.ErrDuplicateKey):
		return &DuplicateKeyError{Field: "user", Value: input.Username}
	}
	return err
}

// validateRegistration 按固定顺序校验注册信息，唯一性检查穿插在格式检查之间
func (s *userService) validateRegistration(ctx context.Context, in models.RegistrationInput) error {
	exists, err := s.repo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if exists {
		return &DuplicateKeyError{Field: "username", Value: in.Username}
	}

	if utils.IsBlank(in.Email) {
		return invalid("email", RuleEmailRequired, "Email is required")
	}
	if !utils.ValidateEmailFormat(in.Email) {
		return invalid("email", RuleEmailFormat, "Email format is invalid")
	}
	if exists, err = s.repo.ExistsByEmail(ctx, in.Email); err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return &DuplicateKeyError{Field: "email", Value: in.Email}
	}

	if !utils.ValidatePhoneNumber(in.Phone) {
		return invalid("phone", RulePhoneFormat, "Phone must contain exactly 10 digits")
	}
	if exists, err = s.repo.ExistsByPhone(ctx, in.Phone); err != nil {
		return fmt.Errorf("check phone: %w", err)
	}
	if exists {
		return &DuplicateKeyError{Field: "phone", Value: in.Phone}
	}

	if utils.IsBlank(in.Password) {
		return invalid("password", RulePasswordRequired, "Password is required")
	}
	if n := utils.CharLen(in.Password); n < 4 || n > 20 {
		return invalid("password", RulePasswordLength, "Password must be 4-20 characters long")
	}
	if utils.IsBlank(in.Username) {
		return invalid("username", RuleUsernameRequired, "Username is required")
	}
	if utils.CharLen(in.Username) > 20 {
		return invalid("username", RuleUsernameLength, "Username must not exceed 20 characters")
	}
	return nil
}

// Register 注册普通用户，角色固定为 ROLE_USER
func (s *userService) Register(ctx context.Context, input models.RegistrationInput) (*models.User, error) {
	if err := s.validateRegistration(ctx, input); err != nil {
		metrics.Registrations.WithLabelValues("rejected").Inc()
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         models.RoleUser,
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		metrics.Registrations.WithLabelValues("rejected").Inc()
		return nil, mapUserRepoError(err, input)
	}
	metrics.Registrations.WithLabelValues("success").Inc()
	slog.InfoContext(ctx, "user registered", "id", created.ID, "username", created.Username)
	return created, nil
}

// EnsureUser 用户名不存在时创建预置账号，返回是否新建
func (s *userService) EnsureUser(ctx context.Context, account SeedAccount) (bool, error) {
	exists, err := s.repo.ExistsByUsername(ctx, account.Username)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := s.hasher.Hash(account.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	role := account.Role
	if role == "" {
		role = models.RoleUser
	}
	_, err = s.repo.CreateUser(ctx, &models.User{
		Username:     account.Username,
		PasswordHash: hash,
		Email:        account.Email,
		Phone:        account.Phone,
		Role:         role,
	})
	if err != nil {
		return false, fmt.Errorf("seed user %s: %w", account.Username, err)
	}
	slog.InfoContext(ctx, "seed account created", "username", account.Username, "role", role)
	return true, nil
}

// AuthenticateLookup 返回登录校验所需的凭据，密码比较由安全层完成
func (s *userService) AuthenticateLookup(ctx context.Context, username string) (*models.UserCredentials, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &models.UserCredentials{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
	}, nil
}

// Exists 判断用户名是否已注册
func (s *userService) Exists(ctx context.Context, username string) (bool, error) {
	return s.repo.ExistsByUsername(ctx, username)
}

// ListUsers 全部用户，按 ID 升序
func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateRole 修改目标用户角色，操作者不能修改自己
func (s *userService) UpdateRole(ctx context.Context, targetID int64, newRole models.Role, actingUsername string) error {
	target, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	acting, err := s.repo.GetUserByUsername(ctx, actingUsername)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if acting.ID == target.ID {
		return ErrSelfRoleChangeForbidden
	}
	if !newRole.Valid() {
		return invalid("role", RuleRoleUnknown, fmt.Sprintf("Unknown role: %s", newRole))
	}

	if err := s.repo.UpdateUserRole(ctx, target.ID, newRole); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	slog.InfoContext(ctx, "user role updated", "target", target.Username, "role", newRole, "by", acting.Username)
	return nil
}
