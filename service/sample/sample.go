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

// Package sample is the in-tree method provider used by the CLI server
// command and the tests.
package sample

import (
	"io"
	"sync/atomic"

	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"

	"github.com/soapkit/soap-sdk/soap"
)

const (
	GreeterInterface = "soapkit.sample.Greeter"
	ArchiveInterface = "soapkit.sample.Archive"
)

func Logger(l log.Logger) log.Logger {
	return l.WithFields(log.Fields{log.FieldKeyModule: "sample"})
}

type Greeter struct {
	l log.Logger
}

func (g *Greeter) Greet(doc soap.Document) error {
	g.l.Infof("greet name:%s", doc.Text("//name"))
	return nil
}

// Farewell always denies, it demonstrates the unauthorized signal of the
// dispatch pipeline.
func (g *Greeter) Farewell(doc soap.Document) error {
	return soap.ErrorCodeUnauthorized.Errorf("farewell not allowed")
}

type Archive struct {
	stored int64
	l      log.Logger
}

func (a *Archive) Store(r io.Reader) error {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return errors.Wrapf(err, "fail to io.Copy err:%s", err.Error())
	}
	atomic.AddInt64(&a.stored, n)
	a.l.Infof("store bytes:%d", n)
	return nil
}

func (a *Archive) Stored() int64 {
	return atomic.LoadInt64(&a.stored)
}

// Provider supplies both the method specs and the instances, it backs the
// Method Provider and Instance Provider collaborators at once.
type Provider struct {
	greeter *Greeter
	archive *Archive
}

func NewProvider(l log.Logger) *Provider {
	l = Logger(l)
	return &Provider{
		greeter: &Greeter{l: l},
		archive: &Archive{l: l},
	}
}

func (p *Provider) MethodSpecs() []soap.MethodSpec {
	return []soap.MethodSpec{
		{
			Interface:  GreeterInterface,
			Method:     "greet",
			Params:     []soap.ParamType{soap.ParamDocument},
			Return:     soap.ReturnVoid,
			Remote:     true,
			Interfaces: 1,
			Handler: func(instance interface{}, arg interface{}) error {
				return instance.(*Greeter).Greet(arg.(soap.Document))
			},
		},
		{
			Interface:  GreeterInterface,
			Method:     "farewell",
			Params:     []soap.ParamType{soap.ParamDocument},
			Return:     soap.ReturnVoid,
			Remote:     true,
			Interfaces: 1,
			Handler: func(instance interface{}, arg interface{}) error {
				return instance.(*Greeter).Farewell(arg.(soap.Document))
			},
		},
		{
			Interface:  ArchiveInterface,
			Method:     "store",
			Params:     []soap.ParamType{soap.ParamStream},
			Return:     soap.ReturnVoid,
			Remote:     true,
			Interfaces: 1,
			Handler: func(instance interface{}, arg interface{}) error {
				return instance.(*Archive).Store(arg.(io.Reader))
			},
		},
	}
}

func (p *Provider) Instance(interfaceName string) (interface{}, error) {
	switch interfaceName {
	case GreeterInterface:
		return p.greeter, nil
	case ArchiveInterface:
		return p.archive, nil
	}
	return nil, errors.Errorf("not found instance interface:%s", interfaceName)
}

func (p *Provider) Archive() *Archive {
	return p.archive
}
