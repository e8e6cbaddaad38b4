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
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/soapkit/soap-sdk/soap"
)

const (
	openapi3Version    = "3.0.3"
	infoTitle          = "SOAP SDK - OpenAPI " + openapi3Version
	infoDefaultVersion = "0.1.0"
	mimeTextXML        = "text/xml"
	mimeOctetStream    = "application/octet-stream"
)

var (
	infoLicenseApache = &openapi3.License{
		Name: "Apache 2.0",
		URL:  "http://www.apache.org/licenses/LICENSE-2.0.html",
	}
)

func NewSuccessResponse() *openapi3.Response {
	return openapi3.NewResponse().WithDescription("Successful void invocation, empty body")
}

func ResponsesWithResponse(m openapi3.Responses, status int, resp *openapi3.Response) openapi3.Responses {
	if m == nil {
		m = make(openapi3.Responses)
	}
	m[strconv.FormatInt(int64(status), 10)] = &openapi3.ResponseRef{
		Value: resp,
	}
	return m
}

func NewStringEnumSchema(strs ...string) *openapi3.Schema {
	values := make([]interface{}, len(strs))
	for i := 0; i < len(strs); i++ {
		values[i] = strs[i]
	}
	return openapi3.NewStringSchema().WithEnum(values...)
}

func NewParameters(ps ...*openapi3.Parameter) openapi3.Parameters {
	parameters := make(openapi3.Parameters, 0)
	for _, p := range ps {
		parameters = append(parameters, &openapi3.ParameterRef{
			Value: p,
		})
	}
	return parameters
}

type pathMethods struct {
	interfaceName string
	methods       []string
	document      bool
	stream        bool
}

// NewOpenAPISpec describes the registered method surface. Methods of the same
// interface share one path item, the SOAPAction header selects among them.
func NewOpenAPISpec(specs []soap.MethodSpec) openapi3.T {
	oas := openapi3.T{
		OpenAPI: openapi3Version,
		Info: &openapi3.Info{
			Title:   infoTitle,
			Version: infoDefaultVersion,
			License: infoLicenseApache,
		},
		Paths: make(openapi3.Paths),
	}
	pms := make(map[string]*pathMethods)
	for _, m := range specs {
		cp := soap.ClassPath(m.Interface)
		pm, ok := pms[cp]
		if !ok {
			pm = &pathMethods{interfaceName: m.Interface}
			pms[cp] = pm
		}
		pm.methods = append(pm.methods, m.Method)
		for _, p := range m.Params {
			switch p {
			case soap.ParamDocument:
				pm.document = true
			case soap.ParamStream:
				pm.stream = true
			}
		}
	}
	for cp, pm := range pms {
		content := openapi3.NewContent()
		if pm.document {
			content[mimeTextXML] = openapi3.NewMediaType().WithSchema(
				openapi3.NewStringSchema().WithFormat("xml"))
		}
		if pm.stream {
			content[mimeOctetStream] = openapi3.NewMediaType().WithSchema(
				openapi3.NewBytesSchema())
		}
		oas.Paths[cp+"/"] = &openapi3.PathItem{
			Post: &openapi3.Operation{
				Summary: fmt.Sprintf("Invoke a method of %s", pm.interfaceName),
				Parameters: NewParameters(openapi3.NewHeaderParameter(HeaderSOAPAction).
					WithRequired(true).
					WithSchema(NewStringEnumSchema(pm.methods...))),
				RequestBody: &openapi3.RequestBodyRef{
					Value: openapi3.NewRequestBody().WithContent(content),
				},
				Responses: ResponsesWithResponse(nil, http.StatusOK, NewSuccessResponse()),
			},
		}
	}
	return oas
}
