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

package soap

import (
	"github.com/go-playground/validator/v10"
	"github.com/icon-project/btp2/common/log"
)

type ParamType int

const (
	ParamUnknown ParamType = iota
	ParamDocument
	ParamStream
)

var paramTypeNames = []string{"Unknown", "Document", "Stream"}

func (t ParamType) String() string {
	if t < ParamUnknown || t > ParamStream {
		return paramTypeNames[ParamUnknown]
	}
	return paramTypeNames[t]
}

type ReturnType int

const (
	ReturnVoid ReturnType = iota
	ReturnValue
	ReturnResource
)

var returnTypeNames = []string{"Void", "Value", "Resource"}

func (t ReturnType) String() string {
	if t < ReturnVoid || t > ReturnResource {
		return returnTypeNames[ReturnVoid]
	}
	return returnTypeNames[t]
}

// HandlerFunc invokes the bound method on the given instance with the single
// decoded argument, either a Document or the raw request body stream.
type HandlerFunc func(instance interface{}, arg interface{}) error

// MethodSpec describes a remotely invokable method of a managed interface.
// Interface is the dot separated fully qualified name of the declaring
// interface, Interfaces the number of interfaces the declaring type
// implements.
type MethodSpec struct {
	Interface  string      `json:"interface" validate:"required"`
	Method     string      `json:"method" validate:"required"`
	Params     []ParamType `json:"params"`
	Return     ReturnType  `json:"return"`
	Remote     bool        `json:"remote"`
	Interfaces int         `json:"interfaces"`
	Handler    HandlerFunc `json:"-" validate:"required"`
}

// Eligible reports whether the method may be exposed remotely.
func (s MethodSpec) Eligible() bool {
	return s.Remote && s.Interfaces == 1 && s.Return != ReturnResource
}

var specValidator = validator.New()

func (s MethodSpec) Validate() error {
	if err := specValidator.Struct(&s); err != nil {
		return ErrorCodeInvalidArgument.Wrapf(err, "invalid method spec err:%s", err.Error())
	}
	return nil
}

// MethodProvider supplies the full collection of candidate method specs once
// at startup.
type MethodProvider interface {
	MethodSpecs() []MethodSpec
}

func Logger(l log.Logger) log.Logger {
	return l.WithFields(log.Fields{log.FieldKeyModule: "soap"})
}
