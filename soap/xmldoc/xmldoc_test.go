package xmldoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/icon-project/btp2/common/log"
	"github.com/stretchr/testify/assert"

	"github.com/soapkit/soap-sdk/soap"
)

func TestParserParse(t *testing.T) {
	p := NewParser(log.GlobalLogger())
	d, err := p.Parse(strings.NewReader(
		`<greet><name>soapkit</name><locale>en</locale></greet>`))
	assert.NoError(t, err)
	assert.Equal(t, "greet", d.Name())
	assert.Equal(t, "soapkit", d.Text("//name"))
	assert.Equal(t, "en", d.Text("//locale"))
	assert.Equal(t, "", d.Text("//missing"))
}

func TestParserParseInvalid(t *testing.T) {
	p := NewParser(log.GlobalLogger())
	for _, s := range []string{
		"<greet><name>soapkit</greet>",
		"<greet><name>soapkit</name>",
		"<greet><a><b></a></b></greet>",
		"not xml at all <",
	} {
		_, err := p.Parse(strings.NewReader(s))
		assert.Error(t, err, s)
		assert.True(t, soap.ErrorCodeDecode.Equals(err), s)
	}
}

func TestParserParseEmpty(t *testing.T) {
	p := NewParser(log.GlobalLogger())
	_, err := p.Parse(strings.NewReader(""))
	assert.Error(t, err)
	assert.True(t, soap.ErrorCodeDecode.Equals(err))
}

func TestDocumentWriteTo(t *testing.T) {
	d := NewDocument("greet").Element("name", "soapkit")
	buf := &bytes.Buffer{}
	assert.NoError(t, d.WriteTo(buf))

	p := NewParser(log.GlobalLogger())
	rd, err := p.Parse(buf)
	assert.NoError(t, err)
	assert.Equal(t, "greet", rd.Name())
	assert.Equal(t, "soapkit", rd.Text("//name"))
}
