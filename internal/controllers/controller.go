// Copyright 2024 Bonchef Industrial
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bonchef/maintenance-api/internal/auth"
	"github.com/bonchef/maintenance-api/internal/helpers"
	"github.com/bonchef/maintenance-api/internal/services"
)

// Controller binds HTTP requests to the service layer.
type Controller struct {
	svc  *services.Service
	auth *auth.Authenticator
}

func New(svc *services.Service, authenticator *auth.Authenticator) *Controller {
	return &Controller{svc: svc, auth: authenticator}
}

// respondServiceError maps service sentinel errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		helpers.HandleNotFound(c, err)
	case errors.Is(err, services.ErrConflict):
		helpers.HandleConflict(c, err)
	case errors.Is(err, services.ErrInvalid):
		helpers.HandleInvalidInputError(c, err)
	case errors.Is(err, services.ErrForbidden):
		helpers.HandleForbidden(c, err)
	default:
		helpers.HandleInternalServerError(c, err)
	}
}
