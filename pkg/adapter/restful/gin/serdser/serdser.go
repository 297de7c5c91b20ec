// Copyright (c) 2025 The Vastarion Garage Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser provides the common request binding and response
// serialization helpers which all resource packages share, including
// the uniform rendering of cerr errors and of field-level validation
// failures.
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/vastarion/garage/pkg/core/cerr"
	"github.com/vastarion/garage/pkg/core/log"
)

// Bind deserializes the request body/query into req, selecting the
// binding based on the method and content type. On failure, an error
// response is rendered and false is returned, so the caller handler
// can simply return.
func Bind(c *gin.Context, req any) bool {
	return serErrs(c, c.ShouldBind(req))
}

// BindURI deserializes the path parameters into req, following the
// same error rendering contract as Bind.
func BindURI(c *gin.Context, req any) bool {
	return serErrs(c, c.ShouldBindUri(req))
}

func serErrs(c *gin.Context, err error) bool {
	switch err := err.(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// AddErr appends msgs to the field-level error list of name,
// allocating the map on first use.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

// Assert records msgs for name unless ok holds, reporting ok back.
func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr renders err as a JSON response, taking the status code from
// a wrapped cerr.Error if there is one and falling back to 500.
// Uncategorized errors are logged since they indicate a programming
// or infrastructure issue, not a misuse of the API.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		c.JSON(ce.HTTPStatusCode, gin.H{
			"detail": ce.Err.Error(),
		})
		return
	}
	log.Error(c, "unhandled error", log.Err("error", err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": err.Error(),
	})
}
