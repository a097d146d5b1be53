package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BeforeSave ignores the tx argument, the signature just requires one.
var mockTx *gorm.DB = nil

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	plainPassword := "mySecretPassword123!"
	user := &User{
		Username: "Testuser",
		Password: plainPassword,
	}

	err := user.BeforeSave(mockTx)

	require.NoError(t, err)
	assert.NotEqual(t, plainPassword, user.Password)
	assert.True(t, len(user.Password) > 50, "bcrypt hash should be longer than 50 chars")

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword))
	assert.NoError(t, err, "hash should match the original password")
}

func TestUser_BeforeSave_SkipsAlreadyHashedPassword(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("alreadyHashed"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{
		Username: "Testuser",
		Password: string(hashedPassword),
	}
	originalHash := user.Password

	err = user.BeforeSave(mockTx)

	require.NoError(t, err)
	assert.Equal(t, originalHash, user.Password, "an existing hash must not be re-hashed")
}

func TestUser_CheckPassword(t *testing.T) {
	user := &User{Username: "Alice", Password: "Str0ng!Pass"}
	require.NoError(t, user.BeforeSave(mockTx))

	assert.True(t, user.CheckPassword("Str0ng!Pass"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUser_HasEmail(t *testing.T) {
	email := "alice@example.com"
	empty := ""

	assert.False(t, (&User{}).HasEmail())
	assert.False(t, (&User{Email: &empty}).HasEmail())
	assert.True(t, (&User{Email: &email}).HasEmail())
}
