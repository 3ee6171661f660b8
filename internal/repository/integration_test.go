//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/watchied/67011380-Todo/internal/model"
	"github.com/watchied/67011380-Todo/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=cei password=cei_password dbname=cei_test sslmode=disable TimeZone=Asia/Bangkok"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Category{},
		&model.User{},
		&model.Team{},
		&model.TeamMember{},
		&model.Task{},
		&model.DraftTicket{},
		&model.UserRequest{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// createUser 创建测试用户并返回清理函数
func createUser(t *testing.T, role string, skills ...int64) (*model.User, func()) {
	t.Helper()

	user := &model.User{
		Username:         fmt.Sprintf("user-%d", time.Now().UnixNano()),
		PasswordHash:     "$2a$10$placeholder",
		Role:             role,
		SkillCategoryIDs: model.IntArray(skills),
	}
	if err := testDB.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user, func() {
		testDB.Where("user_id = ?", user.UserID).Delete(&model.User{})
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 任务可见性谓词
// ═══════════════════════════════════════════════════════════

func TestTaskRepo_ListVisible(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	creator, cleanCreator := createUser(t, model.RoleUser)
	defer cleanCreator()
	assignee, cleanAssignee := createUser(t, model.RoleAssignee)
	defer cleanAssignee()
	member, cleanMember := createUser(t, model.RoleUser)
	defer cleanMember()
	stranger, cleanStranger := createUser(t, model.RoleUser)
	defer cleanStranger()

	team := &model.Team{Name: "网络组", AdminID: member.UserID}
	if err := repo.Team.Create(ctx, team); err != nil {
		t.Fatalf("创建团队失败: %v", err)
	}
	defer func() {
		testDB.Where("team_id = ?", team.TeamID).Delete(&model.TeamMember{})
		testDB.Where("team_id = ?", team.TeamID).Delete(&model.Team{})
	}()

	tasks := []*model.Task{
		{CreatorID: creator.UserID, Description: "自己创建", Status: model.TaskStatusTodo},
		{CreatorID: stranger.UserID, Description: "指派给受理人", Status: model.TaskStatusTodo, AssigneeID: &assignee.UserID},
		{CreatorID: stranger.UserID, Description: "团队任务", Status: model.TaskStatusTodo, TeamID: &team.TeamID},
		{CreatorID: stranger.UserID, Description: "无关任务", Status: model.TaskStatusTodo},
	}
	for _, task := range tasks {
		if err := repo.Task.Create(ctx, task); err != nil {
			t.Fatalf("创建任务失败: %v", err)
		}
		defer testDB.Where("task_id = ?", task.TaskID).Delete(&model.Task{})
	}

	cases := []struct {
		name    string
		actorID string
		want    string
	}{
		{"创建者可见自己的任务", creator.UserID, "自己创建"},
		{"受理人可见被指派任务", assignee.UserID, "指派给受理人"},
		{"团队成员可见团队任务", member.UserID, "团队任务"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			visible, _, err := repo.Task.ListVisible(ctx, tc.actorID, 0, 50)
			if err != nil {
				t.Fatalf("ListVisible 失败: %v", err)
			}
			found := false
			for _, task := range visible {
				if task.Description == tc.want {
					found = true
				}
				if task.Description == "无关任务" {
					t.Error("不应看到无关任务")
				}
			}
			if !found {
				t.Errorf("期望看到任务 %q", tc.want)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 请求状态条件更新
// ═══════════════════════════════════════════════════════════

func TestUserRequestRepo_MarkDrafted_Conditional(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	requester, cleanRequester := createUser(t, model.RoleUser)
	defer cleanRequester()

	req := &model.UserRequest{
		RequesterID: requester.UserID,
		Message:     "无法访问网络",
		Status:      model.RequestStatusReceived,
	}
	if err := repo.UserRequest.Create(ctx, req); err != nil {
		t.Fatalf("创建请求失败: %v", err)
	}
	defer testDB.Where("request_id = ?", req.RequestID).Delete(&model.UserRequest{})

	draft := &model.DraftTicket{Title: "Network failure", Summary: "x", Status: model.DraftStatusDraft}
	if err := repo.DraftTicket.Create(ctx, draft); err != nil {
		t.Fatalf("创建草稿失败: %v", err)
	}
	defer testDB.Where("draft_ticket_id = ?", draft.DraftTicketID).Delete(&model.DraftTicket{})

	linked, err := repo.UserRequest.MarkDrafted(ctx, req.RequestID, draft.DraftTicketID)
	if err != nil || !linked {
		t.Fatalf("首次关联期望成功，linked=%v err=%v", linked, err)
	}

	// 重复完成信号：请求已离开 received，条件更新必须落空
	linked, err = repo.UserRequest.MarkDrafted(ctx, req.RequestID, draft.DraftTicketID)
	if err != nil {
		t.Fatalf("重复关联报错: %v", err)
	}
	if linked {
		t.Error("重复关联期望 linked=false")
	}

	resolved, err := repo.UserRequest.MarkResolved(ctx, req.RequestID)
	if err != nil || !resolved {
		t.Fatalf("draft → resolved 期望成功，resolved=%v err=%v", resolved, err)
	}
	resolved, _ = repo.UserRequest.MarkResolved(ctx, req.RequestID)
	if resolved {
		t.Error("重复 resolve 期望落空")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 草稿状态条件更新
// ═══════════════════════════════════════════════════════════

func TestDraftTicketRepo_UpdateStatus_Conditional(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	draft := &model.DraftTicket{Title: "x", Summary: "y", Status: model.DraftStatusDraft}
	if err := repo.DraftTicket.Create(ctx, draft); err != nil {
		t.Fatalf("创建草稿失败: %v", err)
	}
	defer testDB.Where("draft_ticket_id = ?", draft.DraftTicketID).Delete(&model.DraftTicket{})

	ok, err := repo.DraftTicket.UpdateStatus(ctx, draft.DraftTicketID, model.DraftStatusDraft, model.DraftStatusApproved)
	if err != nil || !ok {
		t.Fatalf("首次审批期望成功，ok=%v err=%v", ok, err)
	}

	// 已审批的草稿不可再驳回
	ok, err = repo.DraftTicket.UpdateStatus(ctx, draft.DraftTicketID, model.DraftStatusDraft, model.DraftStatusRejected)
	if err != nil {
		t.Fatalf("重复审批报错: %v", err)
	}
	if ok {
		t.Error("已决草稿期望 ok=false")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 数组字段往返
// ═══════════════════════════════════════════════════════════

func TestArrayColumns_Roundtrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	user, cleanUser := createUser(t, model.RoleAssignee, 17, 3)
	defer cleanUser()

	loaded, err := repo.User.GetByID(ctx, user.UserID)
	if err != nil {
		t.Fatalf("查询用户失败: %v", err)
	}
	if len(loaded.SkillCategoryIDs) != 2 || loaded.SkillCategoryIDs[0] != 17 {
		t.Errorf("期望技能分类=[17 3]，实际=%v", loaded.SkillCategoryIDs)
	}

	task := &model.Task{CreatorID: user.UserID, Description: "附件测试", Status: model.TaskStatusTodo}
	if err := repo.Task.Create(ctx, task); err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	defer testDB.Where("task_id = ?", task.TaskID).Delete(&model.Task{})

	task.Attachments = append(task.Attachments, `s3://bucket/report "final".pdf`)
	if err := repo.Task.AppendAttachment(ctx, task); err != nil {
		t.Fatalf("追加附件失败: %v", err)
	}

	loadedTask, err := repo.Task.GetByID(ctx, task.TaskID)
	if err != nil {
		t.Fatalf("查询任务失败: %v", err)
	}
	if len(loadedTask.Attachments) != 1 || loadedTask.Attachments[0] != `s3://bucket/report "final".pdf` {
		t.Errorf("附件往返不一致，实际=%v", loadedTask.Attachments)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 建团事务同时写入管理员成员
// ═══════════════════════════════════════════════════════════

func TestTeamRepo_Create_InsertsAdminMember(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	admin, cleanAdmin := createUser(t, model.RoleUser)
	defer cleanAdmin()

	team := &model.Team{Name: "硬件组", AdminID: admin.UserID}
	if err := repo.Team.Create(ctx, team); err != nil {
		t.Fatalf("创建团队失败: %v", err)
	}
	defer func() {
		testDB.Where("team_id = ?", team.TeamID).Delete(&model.TeamMember{})
		testDB.Where("team_id = ?", team.TeamID).Delete(&model.Team{})
	}()

	memberships, err := repo.User.ListMemberships(ctx, admin.UserID)
	if err != nil {
		t.Fatalf("查询成员关系失败: %v", err)
	}
	found := false
	for _, m := range memberships {
		if m.TeamID == team.TeamID && m.TeamRole == model.TeamRoleAdmin {
			found = true
		}
	}
	if !found {
		t.Error("期望建团后管理员已写入 team_members 且角色为 admin")
	}
}
