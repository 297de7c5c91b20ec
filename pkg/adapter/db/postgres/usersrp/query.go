// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vastarion/garage/pkg/adapter/db/postgres"
	"github.com/vastarion/garage/pkg/core/cerr"
	"github.com/vastarion/garage/pkg/core/model"
)

type gUser struct {
	ID             uuid.UUID `gorm:"primaryKey;type:uuid;column:id"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Role           string    `gorm:"not null;default:driver"`
	IsBanned       bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
}

func (gu *gUser) TableName() string {
	return "users"
}

func (gu *gUser) Model() *model.User {
	return &model.User{
		ID:             gu.ID,
		Email:          gu.Email,
		HashedPassword: gu.HashedPassword,
		Role:           gu.Role,
		IsBanned:       gu.IsBanned,
		CreatedAt:      gu.CreatedAt,
	}
}

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint
// violation, reported when an email is registered twice.
const uniqueViolation = "23505"

func Create[Q postgres.Queryer](
	ctx context.Context, q Q, email, hashedPassword string,
) (*model.User, error) {
	gdb := q.GORM(ctx)
	gu := &gUser{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           model.DefaultUserRole,
		CreatedAt:      time.Now(),
	}
	if err := gdb.Create(gu).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolation {
			return nil, cerr.Conflict(
				fmt.Errorf("email is already registered"),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model(), nil
}

func GetByEmail[Q postgres.Queryer](
	ctx context.Context, q Q, email string,
) (*model.User, error) {
	gdb := q.GORM(ctx)
	var gu []gUser
	gdb = gdb.Where("email=?", email).Limit(1).Find(&gu)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gu) != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("no user with email %q", email),
		)
	}
	return gu[0].Model(), nil
}

func GetByID[Q postgres.Queryer](
	ctx context.Context, q Q, userID uuid.UUID,
) (*model.User, error) {
	gdb := q.GORM(ctx)
	var gu []gUser
	gdb = gdb.Where("id=?", userID).Limit(1).Find(&gu)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gu) != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("no user with id %v", userID),
		)
	}
	return gu[0].Model(), nil
}

// Migrate creates or updates the users table, so the `garage db init`
// command can settle the schema without a separate migration tool.
func Migrate[Q postgres.Queryer](ctx context.Context, q Q) error {
	return q.GORM(ctx).AutoMigrate(&gUser{})
}
