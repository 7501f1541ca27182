package services

import (
	"context"
	"testing"

	"codama/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func adminActor(u *models.User) Actor {
	return Actor{ID: u.ID, Role: models.RoleAdmin}
}

func userActor(u *models.User) Actor {
	return Actor{ID: u.ID, Role: models.RoleUser}
}

func TestUserService_Get_UserCanOnlyReadThemselves(t *testing.T) {
	alice := &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleUser}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", Role: models.RoleUser}
	svc := NewUserService(newFakeUserStore(alice, bob), new(MockSessionStore))

	got, err := svc.Get(context.Background(), userActor(alice), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = svc.Get(context.Background(), userActor(alice), bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserService_Update_RolePolicies(t *testing.T) {
	admin := &models.User{Name: "Root", Email: "root@example.com", Role: models.RoleAdmin}
	member := &models.User{Name: "Member", Email: "member@example.com", Role: models.RoleUser}
	svc := NewUserService(newFakeUserStore(admin, member), new(MockSessionStore))
	ctx := context.Background()

	promote := models.RoleAdmin
	_, err := svc.Update(ctx, userActor(member), member.ID, UpdateUserRequest{Role: &promote})
	assert.ErrorIs(t, err, ErrForbidden, "users cannot promote themselves")

	demote := models.RoleUser
	_, err = svc.Update(ctx, adminActor(admin), admin.ID, UpdateUserRequest{Role: &demote})
	assert.ErrorIs(t, err, ErrForbidden, "admins cannot demote themselves")

	bogus := "owner"
	_, err = svc.Update(ctx, adminActor(admin), member.ID, UpdateUserRequest{Role: &bogus})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.Update(ctx, adminActor(admin), member.ID, UpdateUserRequest{Role: &promote})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
}

func TestUserService_Update_SelfProfile(t *testing.T) {
	member := &models.User{Name: "Member", Email: "member@example.com", Role: models.RoleUser}
	svc := NewUserService(newFakeUserStore(member), new(MockSessionStore))

	name := "  New Name "
	email := "NEW@Example.com"
	updated, err := svc.Update(context.Background(), userActor(member), member.ID, UpdateUserRequest{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)

	empty := " "
	_, err = svc.Update(context.Background(), userActor(member), member.ID, UpdateUserRequest{Name: &empty})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_Delete_LastAdminIsProtected(t *testing.T) {
	admin := &models.User{Name: "Root", Email: "root@example.com", Role: models.RoleAdmin}
	member := &models.User{Name: "Member", Email: "member@example.com", Role: models.RoleUser}
	sessions := new(MockSessionStore)
	users := newFakeUserStore(admin, member)
	svc := NewUserService(users, sessions)

	err := svc.Delete(context.Background(), adminActor(admin), admin.ID)
	assert.ErrorIs(t, err, ErrConflict)

	sessions.On("RevokeAllForUser", mock.Anything, member.ID).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), adminActor(admin), member.ID))
	sessions.AssertExpectations(t)

	assert.NotNil(t, users.users[member.ID].DeletedAt)
}

func TestUserService_Delete_UserCannotDeleteOthers(t *testing.T) {
	alice := &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleUser}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", Role: models.RoleUser}
	svc := NewUserService(newFakeUserStore(alice, bob), new(MockSessionStore))

	err := svc.Delete(context.Background(), userActor(alice), bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserService_Create_RequiresAdminAndRejectsDuplicates(t *testing.T) {
	admin := &models.User{Name: "Root", Email: "root@example.com", Role: models.RoleAdmin}
	svc := NewUserService(newFakeUserStore(admin), new(MockSessionStore))
	req := CreateUserRequest{Name: "New", Email: "new@example.com", Password: "password123"}

	_, err := svc.Create(context.Background(), Actor{ID: uuid.New(), Role: models.RoleUser}, req)
	assert.ErrorIs(t, err, ErrForbidden)

	created, err := svc.Create(context.Background(), adminActor(admin), req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.NotEmpty(t, created.PasswordHash)

	_, err = svc.Create(context.Background(), adminActor(admin), req)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserService_List_TrashedRequiresAdmin(t *testing.T) {
	member := &models.User{Name: "Member", Email: "member@example.com", Role: models.RoleUser}
	svc := NewUserService(newFakeUserStore(member), new(MockSessionStore))

	_, err := svc.List(context.Background(), userActor(member), models.ListQuery{})
	assert.ErrorIs(t, err, ErrForbidden)

	page, err := svc.List(context.Background(), SystemActor, models.ListQuery{PerPage: 1000})
	require.NoError(t, err)
	assert.Equal(t, models.MaxPerPage, page.PerPage)
	assert.Equal(t, 1, page.Total)
}

func TestUserService_Update_KeepsNameAcrossUpdates(t *testing.T) {
	member := &models.User{Name: "Tom & Jerry", Email: "tom@example.com", Role: models.RoleUser}
	svc := NewUserService(newFakeUserStore(member), new(MockSessionStore))
	ctx := context.Background()

	password := "new-password-1"
	_, err := svc.Update(ctx, userActor(member), member.ID, UpdateUserRequest{Password: &password})
	require.NoError(t, err)
	updated, err := svc.Update(ctx, userActor(member), member.ID, UpdateUserRequest{Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "Tom & Jerry", updated.Name)

	stored, err := svc.Get(ctx, userActor(member), member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tom & Jerry", stored.Name)
}
