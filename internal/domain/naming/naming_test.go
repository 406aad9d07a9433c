package naming_test

import (
	"testing"

	"github.com/abdidvp/pystyle/internal/domain/naming"
	"github.com/stretchr/testify/assert"
)

func TestIsSnakeCase(t *testing.T) {
	for _, ok := range []string{"x", "my_var", "_private", "__dunder__", "v2"} {
		assert.True(t, naming.IsSnakeCase(ok), ok)
	}
	for _, bad := range []string{"MyVar", "myVar", "X", "2x", "ünï"} {
		assert.False(t, naming.IsSnakeCase(bad), bad)
	}
}

func TestIsCapWords(t *testing.T) {
	assert.True(t, naming.IsCapWords("MyClass"))
	assert.True(t, naming.IsCapWords("HTTPServer2"))
	assert.False(t, naming.IsCapWords("my_class"))
	assert.False(t, naming.IsCapWords("My_Class"))
	assert.False(t, naming.IsCapWords("_Private"))
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MyVariable", "my_variable"},
		{"myFunction", "my_function"},
		{"_MyVariable", "_my_variable"},
		{"HTTPServer", "http_server"},
		{"myVar2", "my_var2"},
		{"Mixed_Case", "mixed_case"},
		{"already_snake", "already_snake"},
		{"X", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := naming.ToSnakeCase(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, naming.IsSnakeCase(got))
		})
	}
}

func TestToCapWords(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"my_class", "MyClass"},
		{"myclass", "Myclass"},
		{"myClass", "MyClass"},
		{"Already", "Already"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := naming.ToCapWords(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, naming.IsCapWords(got))
		})
	}
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, naming.IsKeyword("class"))
	assert.True(t, naming.IsKeyword("None"))
	assert.False(t, naming.IsKeyword("match"))
	assert.False(t, naming.IsKeyword("value"))
}
