// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package servicesuc contains the service-history UseCase. Each
// operation first resolves the caller's access to the vehicle through
// the accessuc resolver with its own acceptable-permission set:
//
//	add:    owner or {editor, driver}
//	list:   owner or {viewer, editor, driver}
//	delete: owner or {editor}
package servicesuc

import (
	"context"

	"github.com/google/uuid"
	"github.com/vastarion/garage/pkg/core/cerr"
	"github.com/vastarion/garage/pkg/core/model"
	"github.com/vastarion/garage/pkg/core/repo"
	"github.com/vastarion/garage/pkg/core/usecase/accessuc"
)

// Acceptable-permission sets per operation. Declared as variables
// only to avoid repeating the literals; the sets stay unordered.
var (
	addPerms    = []model.Permission{model.PermissionEditor, model.PermissionDriver}
	listPerms   = []model.Permission{model.PermissionViewer, model.PermissionEditor, model.PermissionDriver}
	deletePerms = []model.Permission{model.PermissionEditor}
)

// UseCase represents the service-history use case. It holds a
// database connection pool, the service records repository instance,
// and the access resolver which gates every operation.
type UseCase struct {
	pool       repo.Pool
	servicesrp repo.ServiceRecords
	access     *accessuc.UseCase
}

// New instantiates a service-history use case.
func New(
	p repo.Pool, s repo.ServiceRecords, a *accessuc.UseCase,
) *UseCase {
	return &UseCase{pool: p, servicesrp: s, access: a}
}

// Add use case appends a service record to the vehicle's history.
// The caller must be the owner or hold an editor or driver grant.
func (services *UseCase) Add(
	ctx context.Context, vin string, userID uuid.UUID, r model.ServiceRecord,
) (created *model.ServiceRecord, err error) {
	if err := r.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	if _, _, err := services.access.Resolve(ctx, vin, userID, addPerms); err != nil {
		return nil, err
	}
	r.VehicleVIN = vin
	err = services.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := services.servicesrp.Conn(c)
		created, err = q.Create(ctx, &r)
		return err
	})
	if err != nil {
		created = nil
	}
	return
}

// List use case returns the vehicle's service history, newest first.
// The caller must be the owner or hold any grant.
func (services *UseCase) List(
	ctx context.Context, vin string, userID uuid.UUID,
) (rs []model.ServiceRecord, err error) {
	if _, _, err := services.access.Resolve(ctx, vin, userID, listPerms); err != nil {
		return nil, err
	}
	err = services.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := services.servicesrp.Conn(c)
		rs, err = q.List(ctx, vin)
		return err
	})
	if err != nil {
		rs = nil
	}
	return
}

// Delete use case removes one service record from the vehicle's
// history. The caller must be the owner or hold an editor grant.
// Deleting a record which does not exist (or belongs to another
// vehicle) reports a not-found error even after access is granted.
func (services *UseCase) Delete(
	ctx context.Context, vin string, userID uuid.UUID, recordID int64,
) error {
	if _, _, err := services.access.Resolve(ctx, vin, userID, deletePerms); err != nil {
		return err
	}
	return services.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := services.servicesrp.Conn(c)
		return q.Delete(ctx, vin, recordID)
	})
}
