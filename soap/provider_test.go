package soap

import (
	"testing"

	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"
	"github.com/stretchr/testify/assert"
)

func TestCachedInstanceProvider(t *testing.T) {
	calls := 0
	p, err := NewCachedInstanceProvider(InstanceProviderFunc(
		func(interfaceName string) (interface{}, error) {
			calls++
			return &struct{ name string }{interfaceName}, nil
		}), 0, log.GlobalLogger())
	assert.NoError(t, err)

	v1, err := p.Instance("app.service.Greeter")
	assert.NoError(t, err)
	v2, err := p.Instance("app.service.Greeter")
	assert.NoError(t, err)
	assert.Same(t, v1, v2)
	assert.Equal(t, 1, calls)

	_, err = p.Instance("app.service.Archive")
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCachedInstanceProviderError(t *testing.T) {
	p, err := NewCachedInstanceProvider(InstanceProviderFunc(
		func(interfaceName string) (interface{}, error) {
			return nil, errors.Errorf("not found instance interface:%s", interfaceName)
		}), 1, log.GlobalLogger())
	assert.NoError(t, err)

	_, err = p.Instance("app.service.Missing")
	assert.Error(t, err)
}
