package repository

import (
	"context"
	"fmt"
	"testing"

	"devconnector/internal/database"
	"devconnector/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	return db
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Name:     fmt.Sprintf("User %d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Password: "hashed",
		Avatar:   "https://www.gravatar.com/avatar/x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func ctx() context.Context {
	return context.Background()
}
