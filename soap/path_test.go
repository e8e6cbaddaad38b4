package soap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRequestPath(t *testing.T) {
	args := []struct {
		path      string
		classPath string
	}{
		{"/app/service/Greeter/", "/app/service/Greeter"},
		{"/app/Greeter/", "/app/Greeter"},
		{"/a1/b2/Class3/", "/a1/b2/Class3"},
		{"/app/service/Outer/Inner/", "/app/service/Outer/Inner"},
		{"/app/service/Class_Name/", "/app/service/Class_Name"},
	}
	for _, arg := range args {
		cp, ok := MatchRequestPath(arg.path)
		assert.True(t, ok, arg.path)
		assert.Equal(t, arg.classPath, cp, arg.path)
	}
}

func TestMatchRequestPathInvalid(t *testing.T) {
	args := []string{
		"",
		"/",
		"/Greeter/",
		"/app/service/Greeter",
		"/App/service/Greeter/",
		"/app/Service/greeter/",
		"/app/service/greeter/",
		"/1app/service/Greeter/",
		"/app/service/1Greeter/",
		"/app//Greeter/",
		"/app/service/Greeter//",
		"app/service/Greeter/",
		"/app/ser vice/Greeter/",
		"/app/service/Greeter/greet",
	}
	for _, arg := range args {
		_, ok := MatchRequestPath(arg)
		assert.False(t, ok, arg)
	}
}
