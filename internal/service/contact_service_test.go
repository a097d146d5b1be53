package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lawandcode/lawquiz-api/internal/domain/entity"
	apperrors "github.com/lawandcode/lawquiz-api/internal/pkg/errors"
)

func TestContactService_Submit(t *testing.T) {
	repo := new(MockMessageRepository)
	repo.On("Create", mock.AnythingOfType("*entity.ContactMessage")).Return(nil)

	s, err := NewContactService(repo, 1)
	require.NoError(t, err)

	require.NoError(t, s.Submit("Marie", "Bonjour, une question sur les fiches."))
	repo.AssertExpectations(t)
}

func TestContactService_Submit_Validation(t *testing.T) {
	repo := new(MockMessageRepository)
	s, err := NewContactService(repo, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Submit("", "message"), apperrors.ErrValidation)
	assert.ErrorIs(t, s.Submit("Marie", ""), apperrors.ErrValidation)
	assert.ErrorIs(t, s.Submit("Marie", strings.Repeat("a", entity.MaxContactMessageLength+1)), apperrors.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestContactService_ListMessages_AdminOnly(t *testing.T) {
	repo := new(MockMessageRepository)
	repo.On("List").Return([]entity.ContactMessage{{ID: 1, Name: "Marie"}}, nil)

	s, err := NewContactService(repo, 42)
	require.NoError(t, err)

	_, err = s.ListMessages(7)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	messages, err := s.ListMessages(42)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}
