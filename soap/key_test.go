package soap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "/app/service/Greeter/greet", StorageKey("app.service.Greeter", "greet"))
	assert.Equal(t, "/app/Greeter/greet", StorageKey("app.Greeter", "greet"))
}

func TestRetrievalKey(t *testing.T) {
	args := []struct {
		requestPath string
		key         string
	}{
		{"/pkg/Class/method", "/pkg/Class/method"},
		{"/pkg/Class/method.json", "/pkg/Class/method"},
		{"/pkg/Class/method?x=1", "/pkg/Class/method"},
		{"/pkg/Class/method.json?x=1", "/pkg/Class/method"},
		{"/pkg/Class/method?x=1.5", "/pkg/Class/method"},
		{"/pkg/Class/method.tar.gz", "/pkg/Class/method.tar"},
	}
	for _, arg := range args {
		assert.Equal(t, arg.key, RetrievalKey(arg.requestPath), arg.requestPath)
	}
}

func TestKeyIdentity(t *testing.T) {
	classPath := ClassPath("app.service.Greeter")
	assert.Equal(t,
		StorageKey("app.service.Greeter", "greet"),
		RetrievalKey(classPath+"/"+"greet"))
}
