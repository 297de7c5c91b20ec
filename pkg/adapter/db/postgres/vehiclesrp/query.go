// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesrp

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
	"gorm.io/gorm/clause"
)

type gVehicle struct {
	VIN       string `gorm:"primaryKey;column:vin;size:17"`
	Brand     string `gorm:"not null"`
	ModelName string `gorm:"column:model;not null"`
	Year      int    `gorm:"not null"`
	Mileage   int    `gorm:"not null;default:0"`
	Color     string
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	IsDeleted bool `gorm:"not null;default:false"`
}

func (gv *gVehicle) TableName() string {
	return "vehicles"
}

func (gv *gVehicle) Model() *model.Vehicle {
	return &model.Vehicle{
		VIN:       gv.VIN,
		Brand:     gv.Brand,
		Model:     gv.ModelName,
		Year:      gv.Year,
		Mileage:   gv.Mileage,
		Color:     gv.Color,
		OwnerID:   gv.OwnerID,
		CreatedAt: gv.CreatedAt,
		IsDeleted: gv.IsDeleted,
	}
}

const uniqueViolation = "23505"

func Create[Q postgres.Queryer](
	ctx context.Context, q Q, v *model.Vehicle,
) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	gv := &gVehicle{
		VIN:       v.VIN,
		Brand:     v.Brand,
		ModelName: v.Model,
		Year:      v.Year,
		Mileage:   v.Mileage,
		Color:     v.Color,
		OwnerID:   v.OwnerID,
		CreatedAt: time.Now(),
	}
	if err := gdb.Create(gv).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolation {
			return nil, cerr.Conflict(
				fmt.Errorf("vin %q is already registered", v.VIN),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gv.Model(), nil
}

func FindActive[Q postgres.Queryer](
	ctx context.Context, q Q, vin string,
) (*model.Vehicle, error) {
	return findOne(ctx, q, "vin=? AND is_deleted=false", vin)
}

func FindActiveOwned[Q postgres.Queryer](
	ctx context.Context, q Q, vin string, ownerID uuid.UUID,
) (*model.Vehicle, error) {
	return findOne(
		ctx, q, "vin=? AND owner_id=? AND is_deleted=false", vin, ownerID,
	)
}

func findOne[Q postgres.Queryer](
	ctx context.Context, q Q, cond string, args ...any,
) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gv []gVehicle
	gdb = gdb.Where(cond, args...).Limit(1).Find(&gv)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gv) != 1 {
		return nil, cerr.NotFound(errors.New("no such vehicle"))
	}
	return gv[0].Model(), nil
}

func ListOwned[Q postgres.Queryer](
	ctx context.Context, q Q, ownerID uuid.UUID, f model.VehicleFilter,
) ([]model.Vehicle, error) {
	gdb := q.GORM(ctx).Where(
		"owner_id=? AND is_deleted=false", ownerID,
	)
	if f.Brand != "" {
		gdb = gdb.Where("brand ILIKE ?", "%"+f.Brand+"%")
	}
	switch f.Sort {
	case model.SortYearAsc:
		gdb = gdb.Order("year ASC")
	default:
		gdb = gdb.Order("year DESC")
	}
	var gvs []gVehicle
	gdb = gdb.Offset(f.Skip).Limit(f.Limit).Find(&gvs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	vs := make([]model.Vehicle, 0, len(gvs))
	for i := range gvs {
		vs = append(vs, *gvs[i].Model())
	}
	return vs, nil
}

// gSharedVehicle is the flat row shape of the shared-with-me listing
// which joins vehicles with the caller's grants and the owner emails.
type gSharedVehicle struct {
	gVehicle
	Permission string
	OwnerEmail string
}

func ListShared[Q postgres.Queryer](
	ctx context.Context, q Q, userID uuid.UUID,
) ([]model.SharedVehicle, error) {
	gdb := q.GORM(ctx)
	var rows []gSharedVehicle
	gdb = gdb.Table("vehicles").Select(
		"vehicles.*, vehicle_access.permission, owners.email AS owner_email",
	).Joins(
		"JOIN vehicle_access ON vehicle_access.vehicle_vin = vehicles.vin",
	).Joins(
		"JOIN users AS owners ON owners.id = vehicles.owner_id",
	).Where(
		"vehicle_access.user_id = ? AND vehicles.is_deleted = false", userID,
	).Scan(&rows)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	vs := make([]model.SharedVehicle, 0, len(rows))
	for i := range rows {
		vs = append(vs, model.SharedVehicle{
			Vehicle:    *rows[i].gVehicle.Model(),
			Permission: model.Permission(rows[i].Permission),
			OwnerEmail: rows[i].OwnerEmail,
		})
	}
	return vs, nil
}

func Update[Q postgres.Queryer](
	ctx context.Context, q Q, vin string, ownerID uuid.UUID,
	u model.VehicleUpdate,
) (*model.Vehicle, error) {
	fields := make(map[string]any, 5)
	if u.Brand != nil {
		fields["brand"] = *u.Brand
	}
	if u.Model != nil {
		fields["model"] = *u.Model
	}
	if u.Year != nil {
		fields["year"] = *u.Year
	}
	if u.Mileage != nil {
		fields["mileage"] = *u.Mileage
	}
	if u.Color != nil {
		fields["color"] = *u.Color
	}
	if len(fields) == 0 {
		// nothing to write; report the current row instead
		return FindActiveOwned(ctx, q, vin, ownerID)
	}
	gdb := q.GORM(ctx)
	var gv []gVehicle
	gdb = gdb.Model(&gv).Clauses(clause.Returning{}).Where(
		"vin=? AND owner_id=? AND is_deleted=false", vin, ownerID,
	).Updates(fields)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gv); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gv[0].Model(), nil
}

func SoftDelete[Q postgres.Queryer](
	ctx context.Context, q Q, vin string, ownerID uuid.UUID,
) error {
	gdb := q.GORM(ctx)
	gdb = gdb.Model(&gVehicle{}).Where(
		"vin=? AND owner_id=?", vin, ownerID,
	).Update("is_deleted", true)
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if gdb.RowsAffected != 1 {
		return cerr.NotFound(errors.New("no such vehicle"))
	}
	return nil
}

// Migrate creates or updates the vehicles table.
func Migrate[Q postgres.Queryer](ctx context.Context, q Q) error {
	return q.GORM(ctx).AutoMigrate(&gVehicle{})
}
