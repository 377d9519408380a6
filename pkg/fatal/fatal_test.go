package fatal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	err := New(ExitNoPerm, "must be root or equivalent (e.g. sudo)")
	assert.Equal(t, "(77) must be root or equivalent (e.g. sudo)", err.Error())
}

func TestNew_ZeroCodeDefaults(t *testing.T) {
	err := New(0, "boom")
	assert.Equal(t, ExitGeneric, err.Code)
}

func TestNewf(t *testing.T) {
	err := Newf(2, "command failed (%d)", 2)
	assert.Equal(t, "(2) command failed (2)", err.Error())
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), ExitGeneric},
		{"fatal error", New(77, "no perm"), 77},
		{"wrapped fatal error", fmt.Errorf("context: %w", New(130, "interrupted")), 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}
