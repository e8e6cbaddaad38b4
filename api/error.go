/*
 * Copyright 2025 SOAPKit Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"fmt"
	"net/http"

	"github.com/icon-project/btp2/common/errors"
	"github.com/labstack/echo/v4"

	"github.com/soapkit/soap-sdk/soap"
)

type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("code:%d, message:%s", e.Code, e.Message)
}

func (e *ErrorResponse) ErrorCode() errors.Code {
	return e.Code
}

func HttpStatusOf(code errors.Code) int {
	switch code {
	case soap.ErrorCodeNotFoundMethod:
		return http.StatusNotFound
	case soap.ErrorCodeInvalidArgument, soap.ErrorCodeDecode:
		return http.StatusBadRequest
	case soap.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// HttpErrorHandler translates dispatch failures to HTTP outcomes. An
// unauthorized failure short-circuits to a bare 401 before any diagnostic
// formatting, every other failure carries an ErrorResponse body.
func HttpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if e, ok := he.Message.(error); ok {
			err = e
		} else {
			err = errors.Errorf("%v", he.Message)
		}
	} else if ec, ok := errors.CoderOf(err); ok {
		code = HttpStatusOf(ec.ErrorCode())
	}
	if code == http.StatusUnauthorized {
		if err = c.NoContent(code); err != nil {
			c.Echo().Logger.Error(err)
		}
		return
	}
	er := &ErrorResponse{
		Code:    errors.CodeOf(err),
		Message: err.Error(),
	}
	if err = c.JSON(code, er); err != nil {
		c.Echo().Logger.Error(err)
	}
}
