// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package accessuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vastarion/garage/pkg/core/cerr"
	"github.com/vastarion/garage/pkg/core/model"
	"github.com/vastarion/garage/pkg/core/repo"
	"github.com/vastarion/garage/pkg/core/usecase/accessuc"
)

// fakePool realizes repo.Pool over in-memory maps, so the resolution
// and sharing logic may be exercised without a DBMS instance.
type fakePool struct{}

func (fakePool) Conn(ctx context.Context, h repo.ConnHandler) error {
	return h(ctx, fakeConn{})
}

func (fakePool) Close() error { return nil }

type fakeConn struct{}

func (fakeConn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("not implemented")
}

func (fakeConn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errors.New("not implemented")
}

func (fakeConn) Tx(ctx context.Context, h repo.TxHandler) error {
	return errors.New("not implemented")
}

func (fakeConn) IsConn() {}

var errNoRow = errors.New("expected one row, but got 0")

type fakeVehicles struct {
	rows map[string]*model.Vehicle // by VIN
}

func (f *fakeVehicles) Conn(repo.Conn) repo.VehiclesConnQueryer { return f }
func (f *fakeVehicles) Tx(repo.Tx) repo.VehiclesTxQueryer       { return f }

func (f *fakeVehicles) Create(
	_ context.Context, v *model.Vehicle,
) (*model.Vehicle, error) {
	f.rows[v.VIN] = v
	return v, nil
}

func (f *fakeVehicles) FindActive(
	_ context.Context, vin string,
) (*model.Vehicle, error) {
	v, ok := f.rows[vin]
	if !ok || v.IsDeleted {
		return nil, cerr.NotFound(errNoRow)
	}
	return v, nil
}

func (f *fakeVehicles) FindActiveOwned(
	ctx context.Context, vin string, ownerID uuid.UUID,
) (*model.Vehicle, error) {
	v, err := f.FindActive(ctx, vin)
	if err != nil || v.OwnerID != ownerID {
		return nil, cerr.NotFound(errNoRow)
	}
	return v, nil
}

func (f *fakeVehicles) ListOwned(
	context.Context, uuid.UUID, model.VehicleFilter,
) ([]model.Vehicle, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeVehicles) ListShared(
	context.Context, uuid.UUID,
) ([]model.SharedVehicle, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeVehicles) Update(
	context.Context, string, uuid.UUID, model.VehicleUpdate,
) (*model.Vehicle, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeVehicles) SoftDelete(
	_ context.Context, vin string, ownerID uuid.UUID,
) error {
	v, ok := f.rows[vin]
	if !ok || v.OwnerID != ownerID {
		return cerr.NotFound(errNoRow)
	}
	v.IsDeleted = true
	return nil
}

type fakeUsers struct {
	rows map[string]*model.User // by email
}

func (f *fakeUsers) Conn(repo.Conn) repo.UsersConnQueryer { return f }
func (f *fakeUsers) Tx(repo.Tx) repo.UsersTxQueryer       { return f }

func (f *fakeUsers) Create(
	context.Context, string, string,
) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUsers) GetByEmail(
	_ context.Context, email string,
) (*model.User, error) {
	u, ok := f.rows[email]
	if !ok {
		return nil, cerr.NotFound(errNoRow)
	}
	return u, nil
}

func (f *fakeUsers) GetByID(
	_ context.Context, userID uuid.UUID,
) (*model.User, error) {
	for _, u := range f.rows {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, cerr.NotFound(errNoRow)
}

type grantKey struct {
	vin    string
	userID uuid.UUID
}

type fakeAccesses struct {
	rows   map[grantKey]*model.VehicleAccess
	nextID int64
}

func (f *fakeAccesses) Conn(repo.Conn) repo.VehicleAccessesConnQueryer {
	return f
}

func (f *fakeAccesses) Tx(repo.Tx) repo.VehicleAccessesTxQueryer {
	return f
}

func (f *fakeAccesses) Upsert(
	_ context.Context, vin string, userID uuid.UUID, p model.Permission,
) (*model.VehicleAccess, error) {
	k := grantKey{vin: vin, userID: userID}
	if g, ok := f.rows[k]; ok {
		g.Permission = p
		return g, nil
	}
	f.nextID++
	g := &model.VehicleAccess{
		ID:         f.nextID,
		VehicleVIN: vin,
		UserID:     userID,
		Permission: p,
	}
	f.rows[k] = g
	return g, nil
}

func (f *fakeAccesses) FindGranted(
	_ context.Context, vin string, userID uuid.UUID,
	perms []model.Permission,
) (*model.VehicleAccess, error) {
	g, ok := f.rows[grantKey{vin: vin, userID: userID}]
	if !ok || !g.Permission.In(perms) {
		return nil, cerr.NotFound(errNoRow)
	}
	return g, nil
}

func (f *fakeAccesses) ListWithEmails(
	_ context.Context, vin string,
) ([]model.VehicleAccessWithEmail, error) {
	var gs []model.VehicleAccessWithEmail
	for _, g := range f.rows {
		if g.VehicleVIN == vin {
			gs = append(gs, model.VehicleAccessWithEmail{
				VehicleAccess: *g,
			})
		}
	}
	return gs, nil
}

func (f *fakeAccesses) Revoke(
	_ context.Context, vin string, userID uuid.UUID,
) error {
	k := grantKey{vin: vin, userID: userID}
	if _, ok := f.rows[k]; !ok {
		return cerr.NotFound(errors.New("nothing to revoke"))
	}
	delete(f.rows, k)
	return nil
}

type AccessUseCaseTestSuite struct {
	suite.Suite

	Ctx      context.Context
	Vehicles *fakeVehicles
	Users    *fakeUsers
	Accesses *fakeAccesses
	Access   *accessuc.UseCase

	owner, grantee, outsider *model.User
}

func TestAccessUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &AccessUseCaseTestSuite{})
}

const testVIN = "WVWZZZ1JZXW000001"

func (s *AccessUseCaseTestSuite) SetupTest() {
	s.Ctx = context.Background()
	s.owner = &model.User{ID: uuid.New(), Email: "owner@example.com"}
	s.grantee = &model.User{ID: uuid.New(), Email: "grantee@example.com"}
	s.outsider = &model.User{ID: uuid.New(), Email: "outsider@example.com"}
	s.Vehicles = &fakeVehicles{rows: map[string]*model.Vehicle{
		testVIN: {
			VIN:     testVIN,
			Brand:   "Volkswagen",
			Model:   "Golf",
			Year:    1999,
			OwnerID: s.owner.ID,
		},
	}}
	s.Users = &fakeUsers{rows: map[string]*model.User{
		s.owner.Email:    s.owner,
		s.grantee.Email:  s.grantee,
		s.outsider.Email: s.outsider,
	}}
	s.Accesses = &fakeAccesses{
		rows: map[grantKey]*model.VehicleAccess{},
	}
	s.Access = accessuc.New(fakePool{}, s.Vehicles, s.Users, s.Accesses)
}

func (s *AccessUseCaseTestSuite) requireStatus(err error, status int) {
	var ce *cerr.Error
	s.Require().ErrorAs(err, &ce)
	s.Equal(status, ce.HTTPStatusCode)
}

func (s *AccessUseCaseTestSuite) grant(p model.Permission) {
	_, err := s.Access.Share(
		s.Ctx, testVIN, s.owner.ID, s.grantee.Email, p,
	)
	s.Require().NoError(err)
}

func (s *AccessUseCaseTestSuite) TestOwnerResolvesWithoutGrants() {
	v, role, err := s.Access.Resolve(s.Ctx, testVIN, s.owner.ID, nil)
	s.Require().NoError(err)
	s.Equal(model.RoleOwner, role)
	s.Equal(testVIN, v.VIN)

	// The acceptable set does not matter for the owner.
	_, role, err = s.Access.Resolve(
		s.Ctx, testVIN, s.owner.ID,
		[]model.Permission{model.PermissionViewer},
	)
	s.Require().NoError(err)
	s.Equal(model.RoleOwner, role)
}

func (s *AccessUseCaseTestSuite) TestNonOwnerOwnerOnlyOperation() {
	s.grant(model.PermissionEditor)
	// An empty acceptable set marks an owner-only operation, so even
	// an editor grant may not help.
	_, _, err := s.Access.Resolve(s.Ctx, testVIN, s.grantee.ID, nil)
	s.requireStatus(err, http.StatusNotFound)
}

func (s *AccessUseCaseTestSuite) TestGrantedResolution() {
	s.grant(model.PermissionDriver)
	required := []model.Permission{
		model.PermissionEditor, model.PermissionDriver,
	}
	v, role, err := s.Access.Resolve(
		s.Ctx, testVIN, s.grantee.ID, required,
	)
	s.Require().NoError(err)
	s.Equal(model.Role("driver"), role)
	s.Equal(testVIN, v.VIN)

	// A viewer-only acceptable set may not match the driver grant.
	_, _, err = s.Access.Resolve(
		s.Ctx, testVIN, s.grantee.ID,
		[]model.Permission{model.PermissionViewer},
	)
	s.requireStatus(err, http.StatusNotFound)
}

func (s *AccessUseCaseTestSuite) TestUngrantedResolution() {
	s.grant(model.PermissionEditor)
	_, _, err := s.Access.Resolve(
		s.Ctx, testVIN, s.outsider.ID,
		[]model.Permission{model.PermissionEditor},
	)
	s.requireStatus(err, http.StatusNotFound)
}

func (s *AccessUseCaseTestSuite) TestMissingVehicleResolution() {
	_, _, err := s.Access.Resolve(
		s.Ctx, "MISSINGVIN01", s.owner.ID,
		[]model.Permission{model.PermissionViewer},
	)
	s.requireStatus(err, http.StatusNotFound)
}

func (s *AccessUseCaseTestSuite) TestDeletedVehicleResolution() {
	s.grant(model.PermissionDriver)
	err := s.Vehicles.SoftDelete(s.Ctx, testVIN, s.owner.ID)
	s.Require().NoError(err)

	// The grant row survives, but the vehicle is invisible to both
	// the owner and the grantee.
	_, _, err = s.Access.Resolve(s.Ctx, testVIN, s.owner.ID, nil)
	s.requireStatus(err, http.StatusNotFound)
	_, _, err = s.Access.Resolve(
		s.Ctx, testVIN, s.grantee.ID,
		[]model.Permission{model.PermissionDriver},
	)
	s.requireStatus(err, http.StatusNotFound)
}

func (s *AccessUseCaseTestSuite) TestShareUpsert() {
	g, err := s.Access.Share(
		s.Ctx, testVIN, s.owner.ID,
		s.grantee.Email, model.PermissionViewer,
	)
	s.Require().NoError(err)
	s.Equal(model.PermissionViewer, g.Permission)

	// Re-sharing overwrites the permission instead of duplicating
	// the grant.
	g2, err := s.Access.Share(
		s.Ctx, testVIN, s.owner.ID,
		s.grantee.Email, model.PermissionEditor,
	)
	s.Require().NoError(err)
	s.Equal(g.ID, g2.ID)
	s.Equal(model.PermissionEditor, g2.Permission)

	gs, err := s.Access.ListAccess(s.Ctx, testVIN, s.owner.ID)
	s.Require().NoError(err)
	s.Len(gs, 1)
}

func (s *AccessUseCaseTestSuite) TestShareRejections() {
	_, err := s.Access.Share(
		s.Ctx, testVIN, s.owner.ID, s.grantee.Email, "admin",
	)
	s.requireStatus(err, http.StatusBadRequest)

	_, err = s.Access.Share(
		s.Ctx, testVIN, s.owner.ID,
		s.owner.Email, model.PermissionViewer,
	)
	s.requireStatus(err, http.StatusBadRequest)
	s.Require().ErrorIs(err, accessuc.ErrSelfShare)

	_, err = s.Access.Share(
		s.Ctx, testVIN, s.owner.ID,
		"nobody@example.com", model.PermissionViewer,
	)
	s.requireStatus(err, http.StatusNotFound)

	// Only the owner may share; a grantee may not re-share.
	s.grant(model.PermissionEditor)
	_, err = s.Access.Share(
		s.Ctx, testVIN, s.grantee.ID,
		s.outsider.Email, model.PermissionViewer,
	)
	s.requireStatus(err, http.StatusNotFound)
}

func (s *AccessUseCaseTestSuite) TestListAccessOwnership() {
	s.grant(model.PermissionViewer)
	_, err := s.Access.ListAccess(s.Ctx, testVIN, s.grantee.ID)
	s.requireStatus(err, http.StatusNotFound)
}

func (s *AccessUseCaseTestSuite) TestRevoke() {
	s.grant(model.PermissionDriver)
	err := s.Access.Revoke(s.Ctx, testVIN, s.owner.ID, s.grantee.ID)
	s.Require().NoError(err)

	_, _, err = s.Access.Resolve(
		s.Ctx, testVIN, s.grantee.ID,
		[]model.Permission{model.PermissionDriver},
	)
	s.requireStatus(err, http.StatusNotFound)

	err = s.Access.Revoke(s.Ctx, testVIN, s.owner.ID, s.grantee.ID)
	s.requireStatus(err, http.StatusNotFound)
}

// Compile-time interface assertions for the fake repositories.
var (
	_ repo.Pool            = fakePool{}
	_ repo.Conn            = fakeConn{}
	_ repo.Vehicles        = (*fakeVehicles)(nil)
	_ repo.Users           = (*fakeUsers)(nil)
	_ repo.VehicleAccesses = (*fakeAccesses)(nil)
)
