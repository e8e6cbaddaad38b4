package sample

import (
	"strings"
	"testing"

	"github.com/icon-project/btp2/common/log"
	"github.com/stretchr/testify/assert"

	"github.com/soapkit/soap-sdk/soap"
	"github.com/soapkit/soap-sdk/soap/xmldoc"
)

func TestProviderMethodSpecs(t *testing.T) {
	p := NewProvider(log.GlobalLogger())
	specs := p.MethodSpecs()
	assert.Len(t, specs, 3)
	for _, m := range specs {
		assert.NoError(t, m.Validate())
		assert.True(t, m.Eligible(), m.Method)
	}
}

func TestProviderInstance(t *testing.T) {
	p := NewProvider(log.GlobalLogger())
	for _, interfaceName := range []string{GreeterInterface, ArchiveInterface} {
		v, err := p.Instance(interfaceName)
		assert.NoError(t, err)
		assert.NotNil(t, v)
	}
	_, err := p.Instance("soapkit.sample.Stranger")
	assert.Error(t, err)
}

func TestGreeter(t *testing.T) {
	p := NewProvider(log.GlobalLogger())
	v, err := p.Instance(GreeterInterface)
	assert.NoError(t, err)
	g := v.(*Greeter)

	doc := xmldoc.NewDocument("greet").Element("name", "tester")
	assert.NoError(t, g.Greet(doc))

	err = g.Farewell(xmldoc.NewDocument("farewell"))
	assert.Error(t, err)
	assert.True(t, soap.ErrorCodeUnauthorized.Equals(err))
}

func TestArchiveStore(t *testing.T) {
	p := NewProvider(log.GlobalLogger())
	a := p.Archive()

	assert.NoError(t, a.Store(strings.NewReader("soapkit")))
	assert.Equal(t, int64(len("soapkit")), a.Stored())
	assert.NoError(t, a.Store(strings.NewReader("soapkit")))
	assert.Equal(t, int64(2*len("soapkit")), a.Stored())
}
