package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder-backend/internal/shared/auth"
)

// spyRepo records whether any repository method was reached.
type spyRepo struct {
	*MemoryRepo
	calls int
}

func newSpyRepo() *spyRepo {
	return &spyRepo{MemoryRepo: NewMemoryRepo()}
}

func (r *spyRepo) Create(ctx context.Context, user User) error {
	r.calls++
	return r.MemoryRepo.Create(ctx, user)
}

func (r *spyRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	r.calls++
	return r.MemoryRepo.GetByEmail(ctx, email)
}

func newTestService(repo Repo) *Service {
	return NewService(repo, auth.NewManager("test-secret", time.Hour))
}

func validSignup() SignUpInput {
	return SignUpInput{
		FullName:        "Jane Doe",
		Username:        "jane",
		Email:           "jane@x.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	ctx := context.Background()

	user, err := svc.SignUp(ctx, validSignup())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jane@x.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	got, token, err := svc.SignIn(ctx, "jane@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)
}

func TestSignInWrongPassword(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.SignUp(ctx, validSignup())
	require.NoError(t, err)

	_, _, err = svc.SignIn(ctx, "jane@x.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInValidationSkipsRepo(t *testing.T) {
	repo := newSpyRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	cases := []struct {
		name, email, password, wantMsg string
	}{
		{"malformed email", "not-an-email", "secret1", "Enter a valid email"},
		{"short password", "jane@x.com", "five5", "Password must be at least 6 characters"},
		{"empty fields", "", "", "Please enter email and password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.SignIn(ctx, tc.email, tc.password)
			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.wantMsg, vErr.Message)
		})
	}
	assert.Zero(t, repo.calls, "validation failures must not reach the repository")
}

func TestSignUpValidationSkipsRepo(t *testing.T) {
	repo := newSpyRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	in := validSignup()
	in.ConfirmPassword = "different"
	_, err := svc.SignUp(ctx, in)
	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Passwords do not match", vErr.Message)

	in = validSignup()
	in.Username = ""
	_, err = svc.SignUp(ctx, in)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "All fields are required", vErr.Message)

	assert.Zero(t, repo.calls, "validation failures must not reach the repository")
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.SignUp(ctx, validSignup())
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, validSignup())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpsertFromOAuthIssuesToken(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	ctx := context.Background()

	token, err := svc.UpsertFromOAuth(ctx, User{
		ID:       "google:123",
		Email:    "jane@x.com",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	user, err := svc.GetByID(ctx, "google:123")
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", user.Email)
}
