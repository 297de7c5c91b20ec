// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/vastarion/garage/pkg/core/model"
)

type ServiceRecordsConnQueryer interface {
	ServiceRecordsQueryer
}

type ServiceRecordsTxQueryer interface {
	ServiceRecordsQueryer
}

// ServiceRecordsQueryer lists the service-history queries. Access
// control happens in the use cases layer (through the access
// resolver) before any of these queries run.
type ServiceRecordsQueryer interface {
	Create(ctx context.Context, r *model.ServiceRecord) (*model.ServiceRecord, error)
	// List returns all records of a vehicle, newest first.
	List(ctx context.Context, vin string) ([]model.ServiceRecord, error)
	// Delete removes the record with the given id if it belongs to
	// the given vehicle, reporting cerr.NotFound otherwise.
	Delete(ctx context.Context, vin string, recordID int64) error
}

type ServiceRecords interface {
	Conn(Conn) ServiceRecordsConnQueryer
	Tx(Tx) ServiceRecordsTxQueryer
}
