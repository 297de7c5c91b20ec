// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package accessrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vastarion/garage/pkg/adapter/db/postgres"
	"github.com/vastarion/garage/pkg/core/cerr"
	"github.com/vastarion/garage/pkg/core/model"
	"gorm.io/gorm/clause"
)

type gVehicleAccess struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	VehicleVIN string    `gorm:"column:vehicle_vin;size:17;not null;uniqueIndex:uq_vehicle_user"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_vehicle_user"`
	Permission string    `gorm:"not null;default:viewer"`
	CreatedAt  time.Time
}

func (ga *gVehicleAccess) TableName() string {
	return "vehicle_access"
}

func (ga *gVehicleAccess) Model() *model.VehicleAccess {
	return &model.VehicleAccess{
		ID:         ga.ID,
		VehicleVIN: ga.VehicleVIN,
		UserID:     ga.UserID,
		Permission: model.Permission(ga.Permission),
		CreatedAt:  ga.CreatedAt,
	}
}

// Upsert inserts a grant row or overwrites the permission of the
// existing one, atomically with respect to the existence check: the
// uq_vehicle_user unique index plus the ON CONFLICT clause guarantee
// that two concurrent shares for the same (vin, user) pair may not
// produce two rows.
func Upsert[Q postgres.Queryer](
	ctx context.Context, q Q, vin string, userID uuid.UUID,
	p model.Permission,
) (*model.VehicleAccess, error) {
	gdb := q.GORM(ctx)
	ga := &gVehicleAccess{
		VehicleVIN: vin,
		UserID:     userID,
		Permission: string(p),
		CreatedAt:  time.Now(),
	}
	err := gdb.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "vehicle_vin"}, {Name: "user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"permission"}),
	}, clause.Returning{}).Create(ga).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return ga.Model(), nil
}

func FindGranted[Q postgres.Queryer](
	ctx context.Context, q Q, vin string, userID uuid.UUID,
	perms []model.Permission,
) (*model.VehicleAccess, error) {
	if len(perms) == 0 {
		return nil, cerr.NotFound(errors.New("no acceptable permissions"))
	}
	labels := make([]string, 0, len(perms))
	for _, p := range perms {
		labels = append(labels, string(p))
	}
	gdb := q.GORM(ctx)
	var gas []gVehicleAccess
	gdb = gdb.Where(
		"vehicle_vin=? AND user_id=? AND permission IN ?",
		vin, userID, labels,
	).Limit(1).Find(&gas)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gas) != 1 {
		return nil, cerr.NotFound(errors.New("no qualifying grant"))
	}
	return gas[0].Model(), nil
}

// gAccessWithEmail is the flat row shape of the access listing which
// joins grants with the grantee emails.
type gAccessWithEmail struct {
	gVehicleAccess
	Email string
}

func ListWithEmails[Q postgres.Queryer](
	ctx context.Context, q Q, vin string,
) ([]model.VehicleAccessWithEmail, error) {
	gdb := q.GORM(ctx)
	var rows []gAccessWithEmail
	gdb = gdb.Table("vehicle_access").Select(
		"vehicle_access.*, users.email",
	).Joins(
		"JOIN users ON users.id = vehicle_access.user_id",
	).Where(
		"vehicle_access.vehicle_vin = ?", vin,
	).Order("vehicle_access.id ASC").Scan(&rows)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	gs := make([]model.VehicleAccessWithEmail, 0, len(rows))
	for i := range rows {
		gs = append(gs, model.VehicleAccessWithEmail{
			VehicleAccess: *rows[i].gVehicleAccess.Model(),
			Email:         rows[i].Email,
		})
	}
	return gs, nil
}

func Revoke[Q postgres.Queryer](
	ctx context.Context, q Q, vin string, userID uuid.UUID,
) error {
	gdb := q.GORM(ctx)
	gdb = gdb.Where(
		"vehicle_vin=? AND user_id=?", vin, userID,
	).Delete(&gVehicleAccess{})
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(errors.New("nothing to revoke"))
	}
	return nil
}

// Migrate creates or updates the vehicle_access table, including the
// uq_vehicle_user unique index which the Upsert relies on.
func Migrate[Q postgres.Queryer](ctx context.Context, q Q) error {
	return q.GORM(ctx).AutoMigrate(&gVehicleAccess{})
}
