package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/watchied/67011380-Todo/config"
	"github.com/watchied/67011380-Todo/internal/dto"
	"github.com/watchied/67011380-Todo/internal/model"
	"github.com/watchied/67011380-Todo/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *mockUserRepo) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}

	repo := newTestRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, repo.User.(*mockUserRepo)
}

func createTestAccount(userRepo *mockUserRepo, username, password, role string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		UserID:       "user-" + username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	userRepo.users[user.UserID] = user
	return user
}

// ── 注册测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := setupTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "zhangsan",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if resp.Role != model.RoleUser {
		t.Errorf("自助注册期望固定 user 角色，实际=%s", resp.Role)
	}
	if resp.ID == "" {
		t.Error("期望返回用户 id")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestAccount(userRepo, "zhangsan", "password123", model.RoleUser)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "zhangsan",
		Password: "password456",
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("期望 ErrUsernameExists，实际=%v", err)
	}
}

// ── 登录测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestAccount(userRepo, "zhangsan", "password123", model.RoleUser)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("期望返回 Token 对")
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("期望 expires_in=900，实际=%d", resp.ExpiresIn)
	}
	if resp.User.Username != "zhangsan" {
		t.Errorf("期望用户名=zhangsan，实际=%s", resp.User.Username)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestAccount(userRepo, "zhangsan", "password123", model.RoleUser)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际=%v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际=%v", err)
	}
}

// ── 刷新 Token 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestAccount(userRepo, "zhangsan", "password123", model.RoleUser)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("期望返回新的 AccessToken")
	}
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestAccount(userRepo, "zhangsan", "password123", model.RoleUser)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})

	// Access Token 不能当作 Refresh Token 使用
	_, err := svc.RefreshToken(context.Background(), login.AccessToken)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际=%v", err)
	}
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际=%v", err)
	}
}

// ── 当前用户测试 ──

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	user := createTestAccount(userRepo, "zhangsan", "password123", model.RoleAssignee)
	user.SkillCategoryIDs = model.IntArray{17}
	user.TeamMemberships = []model.TeamMember{
		{TeamID: "team-1", UserID: user.UserID, TeamRole: model.TeamRoleAdmin},
	}

	resp, err := svc.GetCurrentUser(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("查询当前用户失败: %v", err)
	}
	if resp.Role != model.RoleAssignee {
		t.Errorf("期望角色=assignee，实际=%s", resp.Role)
	}
	if len(resp.SkillCategoryIDs) != 1 || resp.SkillCategoryIDs[0] != 17 {
		t.Errorf("期望技能分类=[17]，实际=%v", resp.SkillCategoryIDs)
	}
	if len(resp.TeamMemberships) != 1 || resp.TeamMemberships[0].TeamRole != model.TeamRoleAdmin {
		t.Errorf("期望团队成员关系含 admin，实际=%v", resp.TeamMemberships)
	}

	if _, err := svc.GetCurrentUser(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际=%v", err)
	}
}
