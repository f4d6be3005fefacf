package services

import (
	"context"
	"encoding/json"
	"testing"

	"medbridge/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceForTest(t *testing.T) (*UserService, *fakeUserRepo, *fakeActionLogRepo, *AuditService) {
	t.Helper()
	users := newFakeUserRepo()
	logs := newFakeActionLogRepo()
	audit := NewAuditService(logs)
	t.Cleanup(audit.Close)
	return NewUserService(users, audit), users, logs, audit
}

func TestListUsers_FilterByRole(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest(t)
	seedUser(t, users, "donor@example.com", "supersecret", models.RoleDonor)
	seedUser(t, users, "ngo@example.com", "supersecret", models.RoleNGO)

	out, total, err := svc.ListUsers(context.Background(), models.RoleNGO, "", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, out, 1)
	assert.Equal(t, "ngo@example.com", out[0].Email)
}

func TestListUsers_InvalidRole(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest(t)

	_, _, err := svc.ListUsers(context.Background(), "superuser", "", 0, 20)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateUser_RecordsDiff(t *testing.T) {
	svc, users, logs, audit := newUserServiceForTest(t)
	user := seedUser(t, users, "donor@example.com", "supersecret", models.RoleDonor)

	newRole := models.RoleVolunteer
	verified := true
	out, err := svc.UpdateUser(context.Background(), user.ID, 99, &AdminUpdateUserInput{
		Role:     &newRole,
		Verified: &verified,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleVolunteer, out.Role)
	assert.True(t, out.Verified)

	audit.Close()
	entries := logs.all()
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionUpdateUser, entries[0].Action)
	assert.Equal(t, uint(99), entries[0].UserID)

	var details struct {
		UserID  uint                   `json:"user_id"`
		Changes map[string]FieldChange `json:"changes"`
	}
	require.NoError(t, json.Unmarshal([]byte(entries[0].Details), &details))
	assert.Equal(t, user.ID, details.UserID)
	assert.Len(t, details.Changes, 2)
	assert.Equal(t, models.RoleDonor, details.Changes["role"].Before)
	assert.Equal(t, models.RoleVolunteer, details.Changes["role"].After)
}

func TestUpdateUser_NoopLeavesNoAuditEntry(t *testing.T) {
	svc, users, logs, audit := newUserServiceForTest(t)
	user := seedUser(t, users, "donor@example.com", "supersecret", models.RoleDonor)

	sameName := user.Name
	_, err := svc.UpdateUser(context.Background(), user.ID, 99, &AdminUpdateUserInput{Name: &sameName})
	require.NoError(t, err)

	audit.Close()
	assert.Empty(t, logs.all())
}

func TestUpdateUser_CannotChangeOwnRole(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest(t)
	admin := seedUser(t, users, "admin@example.com", "supersecret", models.RoleAdmin)

	donor := models.RoleDonor
	_, err := svc.UpdateUser(context.Background(), admin.ID, admin.ID, &AdminUpdateUserInput{Role: &donor})
	assert.ErrorIs(t, err, ErrCannotChangeOwnRole)
}

func TestUpdateUser_EmailTaken(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest(t)
	seedUser(t, users, "taken@example.com", "supersecret", models.RoleDonor)
	user := seedUser(t, users, "mine@example.com", "supersecret", models.RoleDonor)

	taken := "taken@example.com"
	_, err := svc.UpdateUser(context.Background(), user.ID, 99, &AdminUpdateUserInput{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest(t)

	_, err := svc.UpdateUser(context.Background(), 999, 99, &AdminUpdateUserInput{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetBlocked_BlocksAndAudits(t *testing.T) {
	svc, users, logs, audit := newUserServiceForTest(t)
	user := seedUser(t, users, "donor@example.com", "supersecret", models.RoleDonor)

	out, err := svc.SetBlocked(context.Background(), user.ID, 99, true)
	require.NoError(t, err)
	assert.True(t, out.IsBlocked)

	audit.Close()
	entries := logs.all()
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionBlockUser, entries[0].Action)
}

func TestSetBlocked_NoopRejectedWithoutAudit(t *testing.T) {
	svc, users, logs, audit := newUserServiceForTest(t)
	user := seedUser(t, users, "donor@example.com", "supersecret", models.RoleDonor)

	_, err := svc.SetBlocked(context.Background(), user.ID, 99, false)
	assert.ErrorIs(t, err, ErrBlockUnchanged)

	audit.Close()
	assert.Empty(t, logs.all())
}

func TestSetBlocked_Unblock(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest(t)
	user := seedUser(t, users, "donor@example.com", "supersecret", models.RoleDonor)
	user.IsBlocked = true
	require.NoError(t, users.Update(context.Background(), user))

	out, err := svc.SetBlocked(context.Background(), user.ID, 99, false)
	require.NoError(t, err)
	assert.False(t, out.IsBlocked)
}
