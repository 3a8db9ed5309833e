package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hotelvalmont/cms-server/admins"
	fakeadminrepo "github.com/hotelvalmont/cms-server/admins/repofake"
	"github.com/hotelvalmont/cms-server/auth"
)

const (
	testAdminEmail    = "claire@hotelvalmont.fr"
	testAdminPassword = "Valmont2025"
	testAdminName     = "Claire Fontaine"
)

// testFixture holds all test dependencies
type testFixture struct {
	adminRepo admins.Repo
	service   *auth.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	repo := fakeadminrepo.NewFakeAdminRepo()
	service, err := auth.NewService(repo)
	require.NoError(t, err)

	_, err = service.CreateAdmin(context.Background(), testAdminEmail, testAdminPassword, testAdminName)
	require.NoError(t, err)

	return &testFixture{adminRepo: repo, service: service}
}

func TestVerifyCredentials(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	info, err := f.service.VerifyCredentials(ctx, testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	require.Equal(t, testAdminEmail, info.Email)
	require.Equal(t, testAdminName, info.DisplayName)
	require.NotEmpty(t, info.ID)
}

func TestVerifyCredentialsFailuresCollapse(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	// Wrong password and unknown identity must be indistinguishable.
	_, wrongPassErr := f.service.VerifyCredentials(ctx, testAdminEmail, "not-the-password")
	_, unknownErr := f.service.VerifyCredentials(ctx, "nobody@hotelvalmont.fr", testAdminPassword)

	require.ErrorIs(t, wrongPassErr, auth.InvalidCredentialsErr)
	require.ErrorIs(t, unknownErr, auth.InvalidCredentialsErr)
	require.Equal(t, wrongPassErr.Error(), unknownErr.Error())
}

func TestChangePassword(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	info, err := f.service.VerifyCredentials(ctx, testAdminEmail, testAdminPassword)
	require.NoError(t, err)

	err = f.service.ChangePassword(ctx, info.ID, testAdminPassword, "NewValmont2026")
	require.NoError(t, err)

	_, err = f.service.VerifyCredentials(ctx, testAdminEmail, testAdminPassword)
	require.ErrorIs(t, err, auth.InvalidCredentialsErr)

	_, err = f.service.VerifyCredentials(ctx, testAdminEmail, "NewValmont2026")
	require.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	info, err := f.service.VerifyCredentials(ctx, testAdminEmail, testAdminPassword)
	require.NoError(t, err)

	err = f.service.ChangePassword(ctx, info.ID, "not-the-password", "NewValmont2026")
	require.ErrorIs(t, err, auth.InvalidCredentialsErr)
}

func TestChangePasswordWeakNewPassword(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	info, err := f.service.VerifyCredentials(ctx, testAdminEmail, testAdminPassword)
	require.NoError(t, err)

	err = f.service.ChangePassword(ctx, info.ID, testAdminPassword, "short")
	require.Error(t, err)
}

func TestDeleteLastAdmin(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	list, err := f.service.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	err = f.service.DeleteAdmin(ctx, list[0].ID)
	require.ErrorIs(t, err, auth.LastAdminErr)
}

func TestDeleteAdminWithRemaining(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	second, err := f.service.CreateAdmin(ctx, "marc@hotelvalmont.fr", "Marc2025pass", "Marc Dubois")
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteAdmin(ctx, second.ID))

	list, err := f.service.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.CreateAdmin(context.Background(), testAdminEmail, "Another2025pass", "Someone Else")
	require.ErrorIs(t, err, auth.AdminExistsErr)
}

func TestBootstrap(t *testing.T) {
	repo := fakeadminrepo.NewFakeAdminRepo()
	service, err := auth.NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	// No admins yet: bootstrap seeds one.
	require.NoError(t, service.Bootstrap(ctx, testAdminEmail, testAdminPassword, testAdminName))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Already seeded: a second bootstrap is a no-op.
	require.NoError(t, service.Bootstrap(ctx, "other@hotelvalmont.fr", "Other2025pass", "Other"))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestBootstrapWithoutCredentialsIsNoop(t *testing.T) {
	repo := fakeadminrepo.NewFakeAdminRepo()
	service, err := auth.NewService(repo)
	require.NoError(t, err)

	require.NoError(t, service.Bootstrap(context.Background(), "", "", ""))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
