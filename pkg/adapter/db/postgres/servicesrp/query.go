// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package servicesrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vastarion/garage/pkg/adapter/db/postgres"
	"github.com/vastarion/garage/pkg/core/cerr"
	"github.com/vastarion/garage/pkg/core/model"
)

type gServiceRecord struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	VehicleVIN  string `gorm:"column:vehicle_vin;size:17;not null;index"`
	Description string `gorm:"not null"`
	Mileage     int    `gorm:"not null"`
	Cost        *int
	ServiceName string
	Date        time.Time
}

func (gr *gServiceRecord) TableName() string {
	return "service_records"
}

func (gr *gServiceRecord) Model() *model.ServiceRecord {
	return &model.ServiceRecord{
		ID:          gr.ID,
		VehicleVIN:  gr.VehicleVIN,
		Description: gr.Description,
		Mileage:     gr.Mileage,
		Cost:        gr.Cost,
		ServiceName: gr.ServiceName,
		Date:        gr.Date,
	}
}

func Create[Q postgres.Queryer](
	ctx context.Context, q Q, r *model.ServiceRecord,
) (*model.ServiceRecord, error) {
	gdb := q.GORM(ctx)
	gr := &gServiceRecord{
		VehicleVIN:  r.VehicleVIN,
		Description: r.Description,
		Mileage:     r.Mileage,
		Cost:        r.Cost,
		ServiceName: r.ServiceName,
		Date:        r.Date,
	}
	if gr.Date.IsZero() {
		gr.Date = time.Now()
	}
	if err := gdb.Create(gr).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return gr.Model(), nil
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, vin string,
) ([]model.ServiceRecord, error) {
	gdb := q.GORM(ctx)
	var grs []gServiceRecord
	gdb = gdb.Where("vehicle_vin=?", vin).Order("date DESC").Find(&grs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	rs := make([]model.ServiceRecord, 0, len(grs))
	for i := range grs {
		rs = append(rs, *grs[i].Model())
	}
	return rs, nil
}

func Delete[Q postgres.Queryer](
	ctx context.Context, q Q, vin string, recordID int64,
) error {
	gdb := q.GORM(ctx)
	gdb = gdb.Where(
		"id=? AND vehicle_vin=?", recordID, vin,
	).Delete(&gServiceRecord{})
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(errors.New("no such service record"))
	}
	return nil
}

// Migrate creates or updates the service_records table.
func Migrate[Q postgres.Queryer](ctx context.Context, q Q) error {
	return q.GORM(ctx).AutoMigrate(&gServiceRecord{})
}
