package api

import (
	"testing"

	"github.com/icon-project/btp2/common/log"
	"github.com/stretchr/testify/assert"

	"github.com/soapkit/soap-sdk/service/sample"
	"github.com/soapkit/soap-sdk/soap"
)

func Test_NewOpenAPISpec(t *testing.T) {
	l := log.GlobalLogger()
	p := sample.NewProvider(l)
	r := soap.NewRegistry(l)
	assert.NoError(t, r.Register(p.MethodSpecs()))

	oas := NewOpenAPISpec(r.MethodSpecs())
	assert.Equal(t, openapi3Version, oas.OpenAPI)
	assert.Len(t, oas.Paths, 2)

	greeter := oas.Paths["/soapkit/sample/Greeter/"]
	if assert.NotNil(t, greeter) && assert.NotNil(t, greeter.Post) {
		assert.Len(t, greeter.Post.Parameters, 1)
		param := greeter.Post.Parameters[0].Value
		assert.Equal(t, HeaderSOAPAction, param.Name)
		assert.True(t, param.Required)
		enum := param.Schema.Value.Enum
		assert.ElementsMatch(t, []interface{}{"farewell", "greet"}, enum)
		content := greeter.Post.RequestBody.Value.Content
		assert.Contains(t, content, mimeTextXML)
		assert.NotContains(t, content, mimeOctetStream)
	}

	archive := oas.Paths["/soapkit/sample/Archive/"]
	if assert.NotNil(t, archive) && assert.NotNil(t, archive.Post) {
		content := archive.Post.RequestBody.Value.Content
		assert.Contains(t, content, mimeOctetStream)
		assert.NotContains(t, content, mimeTextXML)
		assert.Contains(t, archive.Post.Responses, "200")
	}
}
