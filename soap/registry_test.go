package soap

import (
	"testing"

	"github.com/icon-project/btp2/common/log"
	"github.com/stretchr/testify/assert"
)

func nopHandler(instance interface{}, arg interface{}) error {
	return nil
}

func newSpec(interfaceName, method string) MethodSpec {
	return MethodSpec{
		Interface:  interfaceName,
		Method:     method,
		Params:     []ParamType{ParamDocument},
		Return:     ReturnVoid,
		Remote:     true,
		Interfaces: 1,
		Handler:    nopHandler,
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry(log.GlobalLogger())
	assert.NoError(t, r.Register([]MethodSpec{
		newSpec("app.service.Greeter", "greet"),
		newSpec("app.service.Greeter", "farewell"),
	}))
	assert.Equal(t, 2, r.Len())

	m, ok := r.Lookup("/app/service/Greeter/greet")
	assert.True(t, ok)
	assert.Equal(t, "greet", m.Method)

	_, ok = r.Lookup("/app/service/Greeter/missing")
	assert.False(t, ok)
}

func TestRegistryRegisterIneligible(t *testing.T) {
	notRemote := newSpec("app.service.Hidden", "skip")
	notRemote.Remote = false

	multiInterface := newSpec("app.service.Multi", "skip")
	multiInterface.Interfaces = 2

	resourceReturn := newSpec("app.service.Stream", "skip")
	resourceReturn.Return = ReturnResource

	r := NewRegistry(log.GlobalLogger())
	assert.NoError(t, r.Register([]MethodSpec{notRemote, multiInterface, resourceReturn}))
	assert.Equal(t, 0, r.Len())
}

func TestRegistryRegisterInvalid(t *testing.T) {
	noHandler := newSpec("app.service.Greeter", "greet")
	noHandler.Handler = nil

	r := NewRegistry(log.GlobalLogger())
	err := r.Register([]MethodSpec{noHandler})
	assert.Error(t, err)
	assert.True(t, ErrorCodeInvalidArgument.Equals(err))

	noMethod := newSpec("app.service.Greeter", "")
	err = r.Register([]MethodSpec{noMethod})
	assert.Error(t, err)
}

func TestRegistryRegisterReplace(t *testing.T) {
	first := newSpec("app.service.Greeter", "greet")
	second := newSpec("app.service.Greeter", "greet")
	second.Params = []ParamType{ParamStream}

	r := NewRegistry(log.GlobalLogger())
	assert.NoError(t, r.Register([]MethodSpec{first, second}))
	assert.Equal(t, 1, r.Len())
	m, ok := r.Lookup("/app/service/Greeter/greet")
	assert.True(t, ok)
	assert.Equal(t, ParamStream, m.Params[0])
}

func TestRegistryMethodSpecs(t *testing.T) {
	r := NewRegistry(log.GlobalLogger())
	assert.NoError(t, r.Register([]MethodSpec{
		newSpec("app.service.Greeter", "greet"),
		newSpec("app.service.Archive", "store"),
	}))
	specs := r.MethodSpecs()
	assert.Len(t, specs, 2)
	// ordered by storage key
	assert.Equal(t, "app.service.Archive", specs[0].Interface)
	assert.Equal(t, "app.service.Greeter", specs[1].Interface)
}
