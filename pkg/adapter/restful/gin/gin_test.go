// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vastarion/garage/internal/test/dbcontainer"
	"github.com/vastarion/garage/pkg/adapter/config"
	"github.com/vastarion/garage/pkg/adapter/db/postgres"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/accessrp"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/servicesrp"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/usersrp"
	"github.com/vastarion/garage/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/vastarion/garage/pkg/adapter/restful/gin"
	"github.com/vastarion/garage/pkg/adapter/restful/gin/routes"
	"github.com/vastarion/garage/pkg/core/model"
	"github.com/vastarion/garage/pkg/core/repo"
)

// testConfig connects nowhere; the database section only has to pass
// validation because the suite talks to the container pool directly.
// The minimal iterations count keeps the signup requests fast.
const testConfig = `
database:
  name: garage
  role: garage
gin:
  logger: true
  recovery: true
auth:
  secret: integration-test-s3cret
  token-ttl: 10m
metrics:
  enabled: true
usecases:
  users:
    hash-iterations: 4096
`

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			cc := c.(*postgres.Conn)
			for _, migrate := range []func(
				context.Context, *postgres.Conn,
			) error{
				usersrp.Migrate[*postgres.Conn],
				vehiclesrp.Migrate[*postgres.Conn],
				accessrp.Migrate[*postgres.Conn],
				servicesrp.Migrate[*postgres.Conn],
			} {
				if err := migrate(ctx, cc); err != nil {
					return err
				}
			}
			return nil
		},
	)
	igts.Require().NoError(err, "failed to create schema contents")

	c, err := config.LoadData([]byte(testConfig))
	igts.Require().NoError(err, "failed to load test configs")
	igts.Gin = c.Gin.NewEngine()
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Ctx, igts.Gin, igts.Pool, c)
	igts.Require().NoError(err, "failed to register Gin routes")
}

const prefix = "/api/garage/v1"

// sendJSON serializes body (if any) and records the response of one
// engine round trip, authenticated with tok when it is non-empty.
func (igts *IntegrationGinTestSuite) sendJSON(
	method, path, tok string, body any,
) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		igts.Require().NoError(err, "cannot marshal request body")
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, prefix+path, r)
	igts.Require().NoError(err, "cannot create %s request", method)
	req.Header.Add("Content-Type", "application/json")
	if tok != "" {
		req.Header.Add("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	return w
}

func (igts *IntegrationGinTestSuite) decode(
	w *httptest.ResponseRecorder, res any,
) {
	igts.Require().NoError(
		json.Unmarshal(w.Body.Bytes(), res), "body is not json",
	)
}

func (igts *IntegrationGinTestSuite) signup(email, pass string) {
	w := igts.sendJSON(http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    email,
		"password": pass,
	})
	igts.Require().Equal(201, w.Code, "cannot sign %q up", email)
}

func (igts *IntegrationGinTestSuite) login(email, pass string) string {
	u := url.Values{}
	u.Set("username", email)
	u.Set("password", pass)
	req, err := http.NewRequest(
		http.MethodPost, prefix+"/auth/login",
		strings.NewReader(u.Encode()),
	)
	igts.Require().NoError(err, "cannot create login request")
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	igts.Require().Equal(200, w.Code, "cannot log %q in", email)
	res := &struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}{}
	igts.decode(w, res)
	igts.Equal("bearer", res.TokenType)
	igts.Require().NotEmpty(res.AccessToken)
	return res.AccessToken
}

func vehicleBody(vin string) map[string]any {
	return map[string]any{
		"vin":     vin,
		"brand":   "Volkswagen",
		"model":   "Golf",
		"year":    1999,
		"mileage": 120000,
		"color":   "blue",
	}
}

func (igts *IntegrationGinTestSuite) TestHealthz() {
	req, err := http.NewRequest(http.MethodGet, "/healthz", nil)
	igts.Require().NoError(err)
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	igts.Equal(200, w.Code)
}

func (igts *IntegrationGinTestSuite) TestMetrics() {
	req, err := http.NewRequest(http.MethodGet, "/metrics", nil)
	igts.Require().NoError(err)
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	igts.Equal(200, w.Code)
	igts.Contains(w.Body.String(), "http_in_flight_requests")
}

func (igts *IntegrationGinTestSuite) TestSignup() {
	w := igts.sendJSON(
		http.MethodPost, "/auth/signup", "", map[string]string{
			"email":    "signup@example.com",
			"password": "pass1word",
		},
	)
	igts.Require().Equal(201, w.Code)
	res := map[string]any{}
	igts.decode(w, &res)
	igts.Equal("signup@example.com", res["email"])
	igts.Equal("driver", res["role"])
	igts.NotContains(res, "hashed_password")
	igts.NotContains(res, "password")

	igts.Run("duplicate email", func() {
		w := igts.sendJSON(
			http.MethodPost, "/auth/signup", "", map[string]string{
				"email":    "signup@example.com",
				"password": "pass1word",
			},
		)
		igts.Equal(409, w.Code)
		res := &struct{ Detail string }{}
		igts.decode(w, res)
		igts.Equal("email is already registered", res.Detail)
	})
	igts.Run("weak password", func() {
		for _, pass := range []string{"ab1", "abcdef", "123456"} {
			w := igts.sendJSON(
				http.MethodPost, "/auth/signup", "", map[string]string{
					"email":    "weak@example.com",
					"password": pass,
				},
			)
			igts.Equal(400, w.Code, "password %q must be rejected", pass)
		}
	})
	igts.Run("invalid email", func() {
		w := igts.sendJSON(
			http.MethodPost, "/auth/signup", "", map[string]string{
				"email":    "not-an-email",
				"password": "pass1word",
			},
		)
		igts.Equal(400, w.Code)
		res := &struct{ Email []string }{}
		igts.decode(w, res)
		igts.NotEmpty(res.Email)
	})
}

func (igts *IntegrationGinTestSuite) TestLoginAndProfile() {
	igts.signup("login@example.com", "pass1word")
	tok := igts.login("login@example.com", "pass1word")

	w := igts.sendJSON(http.MethodGet, "/users/me", tok, nil)
	igts.Require().Equal(200, w.Code)
	res := map[string]any{}
	igts.decode(w, &res)
	igts.Equal("login@example.com", res["email"])

	igts.Run("wrong password", func() {
		u := url.Values{}
		u.Set("username", "login@example.com")
		u.Set("password", "wrong2word")
		req, err := http.NewRequest(
			http.MethodPost, prefix+"/auth/login",
			strings.NewReader(u.Encode()),
		)
		igts.Require().NoError(err)
		req.Header.Add(
			"Content-Type", "application/x-www-form-urlencoded",
		)
		w := httptest.NewRecorder()
		igts.Gin.ServeHTTP(w, req)
		igts.Equal(401, w.Code)
		res := &struct{ Detail string }{}
		igts.decode(w, res)
		igts.Equal("incorrect email or password", res.Detail)
	})
	igts.Run("unknown email", func() {
		u := url.Values{}
		u.Set("username", "nobody@example.com")
		u.Set("password", "pass1word")
		req, err := http.NewRequest(
			http.MethodPost, prefix+"/auth/login",
			strings.NewReader(u.Encode()),
		)
		igts.Require().NoError(err)
		req.Header.Add(
			"Content-Type", "application/x-www-form-urlencoded",
		)
		w := httptest.NewRecorder()
		igts.Gin.ServeHTTP(w, req)
		igts.Equal(401, w.Code)
		res := &struct{ Detail string }{}
		igts.decode(w, res)
		igts.Equal(
			"incorrect email or password", res.Detail,
			"unknown emails and wrong passwords must be identical",
		)
	})
	igts.Run("missing token", func() {
		w := igts.sendJSON(http.MethodGet, "/users/me", "", nil)
		igts.Equal(401, w.Code)
	})
	igts.Run("garbage token", func() {
		w := igts.sendJSON(http.MethodGet, "/users/me", "a.b.c", nil)
		igts.Equal(401, w.Code)
	})
}

func (igts *IntegrationGinTestSuite) TestBannedAccount() {
	igts.signup("banned@example.com", "pass1word")
	tok := igts.login("banned@example.com", "pass1word")
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			count, err := c.Exec(
				ctx,
				"UPDATE users SET is_banned=true WHERE email=$1",
				"banned@example.com",
			)
			igts.Equal(int64(1), count, "tried to ban one user")
			return err
		},
	)
	igts.Require().NoError(err, "failed to ban the test user")

	w := igts.sendJSON(http.MethodGet, "/users/me", tok, nil)
	igts.Equal(403, w.Code)
	w = igts.sendJSON(http.MethodGet, "/vehicles/my-vehicles", tok, nil)
	igts.Equal(403, w.Code)
}

func (igts *IntegrationGinTestSuite) TestVehicleLifecycle() {
	igts.signup("garage1@example.com", "pass1word")
	tok := igts.login("garage1@example.com", "pass1word")
	igts.signup("garage2@example.com", "pass1word")
	tok2 := igts.login("garage2@example.com", "pass1word")

	const vin = "JH4KA7561PC000001"
	w := igts.sendJSON(http.MethodPost, "/vehicles", tok, vehicleBody(vin))
	igts.Require().Equal(201, w.Code)
	created := &model.Vehicle{}
	igts.decode(w, created)
	igts.Equal(vin, created.VIN)
	igts.Equal("Volkswagen", created.Brand)

	igts.Run("duplicate vin", func() {
		w := igts.sendJSON(
			http.MethodPost, "/vehicles", tok2, vehicleBody(vin),
		)
		igts.Equal(
			409, w.Code,
			"one VIN may not be registered by two owners",
		)
	})
	igts.Run("invalid year", func() {
		body := vehicleBody("JH4KA7561PC000002")
		body["year"] = 1885
		w := igts.sendJSON(http.MethodPost, "/vehicles", tok, body)
		igts.Equal(400, w.Code)
	})
	igts.Run("vin too short", func() {
		body := vehicleBody("A12")
		w := igts.sendJSON(http.MethodPost, "/vehicles", tok, body)
		igts.Equal(400, w.Code)
	})

	igts.Run("listing", func() {
		body := vehicleBody("JH4KA7561PC000003")
		body["brand"] = "Renault"
		body["model"] = "Clio"
		body["year"] = 2004
		w := igts.sendJSON(http.MethodPost, "/vehicles", tok, body)
		igts.Require().Equal(201, w.Code)

		var vs []model.Vehicle
		w = igts.sendJSON(
			http.MethodGet, "/vehicles/my-vehicles", tok, nil,
		)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &vs)
		igts.Require().Len(vs, 2)
		igts.Equal(
			2004, vs[0].Year, "newest model year must come first",
		)

		w = igts.sendJSON(
			http.MethodGet, "/vehicles/my-vehicles?sort=year", tok, nil,
		)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &vs)
		igts.Require().Len(vs, 2)
		igts.Equal(1999, vs[0].Year)

		w = igts.sendJSON(
			http.MethodGet, "/vehicles/my-vehicles?brand=rena", tok, nil,
		)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &vs)
		igts.Require().Len(
			vs, 1, "brand filtering is a case-insensitive substring",
		)
		igts.Equal("Renault", vs[0].Brand)

		w = igts.sendJSON(
			http.MethodGet,
			"/vehicles/my-vehicles?sort=year&skip=1&limit=1", tok, nil,
		)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &vs)
		igts.Require().Len(vs, 1)
		igts.Equal(2004, vs[0].Year)

		w = igts.sendJSON(
			http.MethodGet, "/vehicles/my-vehicles?sort=vin", tok, nil,
		)
		igts.Equal(400, w.Code, "unknown sort orders must be rejected")

		w = igts.sendJSON(
			http.MethodGet, "/vehicles/my-vehicles", tok2, nil,
		)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &vs)
		igts.Empty(vs, "listings are scoped to the acting owner")
	})

	igts.Run("update", func() {
		w := igts.sendJSON(
			http.MethodPut, "/vehicles/"+vin, tok,
			map[string]any{"color": "red", "mileage": 130000},
		)
		igts.Require().Equal(200, w.Code)
		updated := &model.Vehicle{}
		igts.decode(w, updated)
		igts.Equal("red", updated.Color)
		igts.Equal(130000, updated.Mileage)
		igts.Equal("Volkswagen", updated.Brand, "absent fields stay put")

		w = igts.sendJSON(
			http.MethodPut, "/vehicles/"+vin, tok2,
			map[string]any{"color": "green"},
		)
		igts.Equal(404, w.Code, "a non-owner may not probe the VIN")

		w = igts.sendJSON(
			http.MethodPut, "/vehicles/"+vin, tok,
			map[string]any{"year": 1700},
		)
		igts.Equal(400, w.Code)
	})

	igts.Run("soft delete", func() {
		w := igts.sendJSON(
			http.MethodDelete, "/vehicles/"+vin, tok2, nil,
		)
		igts.Equal(404, w.Code, "a non-owner may not delete")

		w = igts.sendJSON(http.MethodDelete, "/vehicles/"+vin, tok, nil)
		igts.Require().Equal(200, w.Code)

		var vs []model.Vehicle
		w = igts.sendJSON(
			http.MethodGet, "/vehicles/my-vehicles", tok, nil,
		)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &vs)
		igts.Len(vs, 1, "deleted vehicles must vanish from listings")

		w = igts.sendJSON(
			http.MethodPut, "/vehicles/"+vin, tok,
			map[string]any{"color": "black"},
		)
		igts.Equal(404, w.Code, "deleted vehicles may not be updated")

		w = igts.sendJSON(http.MethodDelete, "/vehicles/"+vin, tok, nil)
		igts.Equal(200, w.Code, "deleting twice stays idempotent")
	})
}

func (igts *IntegrationGinTestSuite) TestSharingFlow() {
	igts.signup("alice@example.com", "pass1word")
	alice := igts.login("alice@example.com", "pass1word")
	igts.signup("bob@example.com", "pass1word")
	bob := igts.login("bob@example.com", "pass1word")
	igts.signup("carol@example.com", "pass1word")
	carol := igts.login("carol@example.com", "pass1word")

	const vin = "WAUZZZ8K9AA000001"
	w := igts.sendJSON(http.MethodPost, "/vehicles", alice, vehicleBody(vin))
	igts.Require().Equal(201, w.Code)
	record := map[string]any{
		"description": "oil change",
		"mileage":     121000,
		"cost":        80,
	}

	igts.Run("no access before sharing", func() {
		for _, tc := range []struct {
			method, path string
			body         any
		}{
			{http.MethodGet, "/vehicles/" + vin + "/service-records", nil},
			{http.MethodPost, "/vehicles/" + vin + "/service-records", record},
			{http.MethodGet, "/vehicles/" + vin + "/access", nil},
		} {
			w := igts.sendJSON(tc.method, tc.path, bob, tc.body)
			igts.Equal(
				404, w.Code,
				"%s %s must collapse to not-found", tc.method, tc.path,
			)
		}
	})

	igts.Run("viewer grant", func() {
		w := igts.sendJSON(
			http.MethodPost, "/vehicles/"+vin+"/share", alice,
			map[string]string{
				"email":      "bob@example.com",
				"permission": "viewer",
			},
		)
		igts.Require().Equal(200, w.Code)
		g := &model.VehicleAccess{}
		igts.decode(w, g)
		igts.Equal(model.PermissionViewer, g.Permission)

		var shared []model.SharedVehicle
		w = igts.sendJSON(
			http.MethodGet, "/vehicles/shared-with-me", bob, nil,
		)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &shared)
		igts.Require().Len(shared, 1)
		igts.Equal(vin, shared[0].VIN)
		igts.Equal(model.PermissionViewer, shared[0].Permission)
		igts.Equal("alice@example.com", shared[0].OwnerEmail)

		w = igts.sendJSON(
			http.MethodGet, "/vehicles/"+vin+"/service-records", bob, nil,
		)
		igts.Equal(200, w.Code, "a viewer may list the history")
		w = igts.sendJSON(
			http.MethodPost, "/vehicles/"+vin+"/service-records", bob,
			record,
		)
		igts.Equal(404, w.Code, "a viewer may not append records")
	})

	igts.Run("editor upgrade", func() {
		w := igts.sendJSON(
			http.MethodPost, "/vehicles/"+vin+"/share", alice,
			map[string]string{
				"email":      "bob@example.com",
				"permission": "editor",
			},
		)
		igts.Require().Equal(
			200, w.Code, "re-sharing overwrites the permission",
		)
		w = igts.sendJSON(
			http.MethodPost, "/vehicles/"+vin+"/service-records", bob,
			record,
		)
		igts.Equal(201, w.Code, "an editor may append records")

		var gs []model.VehicleAccessWithEmail
		w = igts.sendJSON(
			http.MethodGet, "/vehicles/"+vin+"/access", alice, nil,
		)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &gs)
		igts.Require().Len(gs, 1, "upsert may not duplicate the grant")
		igts.Equal("bob@example.com", gs[0].Email)
		igts.Equal(model.PermissionEditor, gs[0].Permission)
	})

	igts.Run("grants do not delegate sharing", func() {
		w := igts.sendJSON(
			http.MethodPost, "/vehicles/"+vin+"/share", bob,
			map[string]string{
				"email":      "carol@example.com",
				"permission": "viewer",
			},
		)
		igts.Equal(404, w.Code)
		w = igts.sendJSON(
			http.MethodGet, "/vehicles/"+vin+"/access", bob, nil,
		)
		igts.Equal(404, w.Code)
	})

	igts.Run("share rejections", func() {
		w := igts.sendJSON(
			http.MethodPost, "/vehicles/"+vin+"/share", alice,
			map[string]string{
				"email":      "alice@example.com",
				"permission": "viewer",
			},
		)
		igts.Equal(400, w.Code, "self sharing is rejected")
		w = igts.sendJSON(
			http.MethodPost, "/vehicles/"+vin+"/share", alice,
			map[string]string{
				"email":      "nobody@example.com",
				"permission": "viewer",
			},
		)
		igts.Equal(404, w.Code, "the grantee must be registered")
		w = igts.sendJSON(
			http.MethodPost, "/vehicles/"+vin+"/share", alice,
			map[string]string{
				"email":      "bob@example.com",
				"permission": "admin",
			},
		)
		igts.Equal(400, w.Code, "unknown permission labels are rejected")
	})

	igts.Run("revocation", func() {
		me := map[string]any{}
		w := igts.sendJSON(http.MethodGet, "/users/me", bob, nil)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &me)
		bobID := me["id"].(string)

		w = igts.sendJSON(
			http.MethodDelete,
			"/vehicles/"+vin+"/access/"+bobID, carol, nil,
		)
		igts.Equal(404, w.Code, "only the owner may revoke")

		w = igts.sendJSON(
			http.MethodDelete,
			"/vehicles/"+vin+"/access/"+bobID, alice, nil,
		)
		igts.Require().Equal(200, w.Code)

		w = igts.sendJSON(
			http.MethodGet, "/vehicles/"+vin+"/service-records", bob, nil,
		)
		igts.Equal(404, w.Code, "revocation takes effect immediately")
		var shared []model.SharedVehicle
		w = igts.sendJSON(
			http.MethodGet, "/vehicles/shared-with-me", bob, nil,
		)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &shared)
		igts.Empty(shared)

		w = igts.sendJSON(
			http.MethodDelete,
			"/vehicles/"+vin+"/access/"+bobID, alice, nil,
		)
		igts.Equal(404, w.Code, "revoking twice reports not-found")

		w = igts.sendJSON(
			http.MethodDelete,
			"/vehicles/"+vin+"/access/"+uuid.NewString(), alice, nil,
		)
		igts.Equal(404, w.Code)
	})
}

func (igts *IntegrationGinTestSuite) TestServiceRecords() {
	igts.signup("history@example.com", "pass1word")
	tok := igts.login("history@example.com", "pass1word")
	const vin = "VF1RFB00066000001"
	w := igts.sendJSON(http.MethodPost, "/vehicles", tok, vehicleBody(vin))
	igts.Require().Equal(201, w.Code)

	base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	var recordID int64
	for i, d := range []time.Time{base, base.AddDate(0, 3, 0)} {
		w := igts.sendJSON(
			http.MethodPost, "/vehicles/"+vin+"/service-records", tok,
			map[string]any{
				"description":  fmt.Sprintf("service %d", i+1),
				"mileage":      121000 + i,
				"cost":         100 * (i + 1),
				"service_name": "main street garage",
				"date":         d,
			},
		)
		igts.Require().Equal(201, w.Code)
		r := &model.ServiceRecord{}
		igts.decode(w, r)
		igts.Equal(vin, r.VehicleVIN)
		recordID = r.ID
	}

	igts.Run("validations", func() {
		w := igts.sendJSON(
			http.MethodPost, "/vehicles/"+vin+"/service-records", tok,
			map[string]any{"description": "x", "mileage": 1000},
		)
		igts.Equal(400, w.Code, "one-letter descriptions are rejected")
		w = igts.sendJSON(
			http.MethodPost, "/vehicles/"+vin+"/service-records", tok,
			map[string]any{"description": "oil change", "mileage": 0},
		)
		igts.Equal(400, w.Code, "mileage must be positive")
	})

	igts.Run("listing order", func() {
		var rs []model.ServiceRecord
		w := igts.sendJSON(
			http.MethodGet, "/vehicles/"+vin+"/service-records", tok, nil,
		)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &rs)
		igts.Require().Len(rs, 2)
		igts.Equal("service 2", rs[0].Description, "newest first")
		igts.Equal("service 1", rs[1].Description)
	})

	igts.Run("deletion", func() {
		w := igts.sendJSON(
			http.MethodDelete,
			fmt.Sprintf("/vehicles/%s/service-records/%d", vin, recordID),
			tok, nil,
		)
		igts.Require().Equal(200, w.Code)
		var rs []model.ServiceRecord
		w = igts.sendJSON(
			http.MethodGet, "/vehicles/"+vin+"/service-records", tok, nil,
		)
		igts.Require().Equal(200, w.Code)
		igts.decode(w, &rs)
		igts.Len(rs, 1)

		w = igts.sendJSON(
			http.MethodDelete,
			fmt.Sprintf("/vehicles/%s/service-records/%d", vin, recordID),
			tok, nil,
		)
		igts.Equal(404, w.Code, "records may not be deleted twice")
	})
}
