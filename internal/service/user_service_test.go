package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type fakeUserRepo struct {
	items map[string]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: map[string]model.User{}}
}

func (r *fakeUserRepo) Insert(_ context.Context, u *model.User) error {
	r.items[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id string) (*model.User, error) {
	found, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.items {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Save(_ context.Context, u *model.User) error {
	if _, ok := r.items[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(r.items))
	for _, u := range r.items {
		result = append(result, u)
	}
	return result, nil
}

type recordingMailer struct {
	welcomes []string
	fail     error
}

func (m *recordingMailer) SendWelcome(_ context.Context, to, _, _ string) error {
	if m.fail != nil {
		return m.fail
	}
	m.welcomes = append(m.welcomes, to)
	return nil
}

func newTestUserService(mailer *recordingMailer) *UserService {
	return NewUserService(newFakeUserRepo(), mailer, zerolog.Nop())
}

func TestCreateUserHashesPasswordAndSendsWelcome(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestUserService(mailer)

	created, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "Jean.Martin@Deltapp.fr",
		Name:     "Jean Martin",
		Password: "s3cret!",
	})
	require.NoError(t, err)
	assert.Equal(t, "jean.martin@deltapp.fr", created.Email)
	assert.Equal(t, model.RoleTechnician, created.Role)
	assert.NotEqual(t, "s3cret!", created.PasswordHash)
	assert.Equal(t, []string{"jean.martin@deltapp.fr"}, mailer.welcomes)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc := newTestUserService(&recordingMailer{})

	input := CreateUserInput{Email: "jean@deltapp.fr", Name: "Jean", Password: "pw"}
	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateUserSurvivesMailerFailure(t *testing.T) {
	mailer := &recordingMailer{fail: errors.New("smtp down")}
	svc := newTestUserService(mailer)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Email: "jean@deltapp.fr", Name: "Jean", Password: "pw",
	})
	assert.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestUserService(&recordingMailer{})

	created, err := svc.Create(context.Background(), CreateUserInput{
		Email: "jean@deltapp.fr", Name: "Jean", Password: "s3cret!", Role: model.RoleAdmin,
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "JEAN@deltapp.fr", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Authenticate(context.Background(), "jean@deltapp.fr", "wrong")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Authenticate(context.Background(), "nobody@deltapp.fr", "s3cret!")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResetPasswordChecksCurrentPassword(t *testing.T) {
	svc := newTestUserService(&recordingMailer{})

	_, err := svc.Create(context.Background(), CreateUserInput{
		Email: "jean@deltapp.fr", Name: "Jean", Password: "ancien",
	})
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), "jean@deltapp.fr", "faux", "nouveau")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.ResetPassword(context.Background(), "jean@deltapp.fr", "ancien", "nouveau"))

	_, err = svc.Authenticate(context.Background(), "jean@deltapp.fr", "ancien")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Authenticate(context.Background(), "jean@deltapp.fr", "nouveau")
	assert.NoError(t, err)
}

func TestResetPasswordRequiresBothPasswords(t *testing.T) {
	svc := newTestUserService(&recordingMailer{})

	err := svc.ResetPassword(context.Background(), "jean@deltapp.fr", "", "nouveau")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateUserPartialFields(t *testing.T) {
	svc := newTestUserService(&recordingMailer{})

	created, err := svc.Create(context.Background(), CreateUserInput{
		Email: "jean@deltapp.fr", Name: "Jean", Password: "pw",
	})
	require.NoError(t, err)

	name := "Jean M."
	role := model.RoleDispatcher
	updated, err := svc.Update(context.Background(), created.ID, UpdateUserInput{Name: &name, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "Jean M.", updated.Name)
	assert.Equal(t, model.RoleDispatcher, updated.Role)
	assert.Equal(t, created.Email, updated.Email)
}
