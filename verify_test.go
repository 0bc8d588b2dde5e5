package cssmacro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyModule(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{
			name: "expanded module",
			code: "import { css as _css } from \"emotion\";\nconst a = _css([`color: red;`])\n",
		},
		{
			name: "jsx",
			code: "import { styled as _styled } from \"emotion\";\nconst A = _styled(\"div\")([`a`])\nexport default () => <A />\n",
		},
		{
			name:    "broken",
			code:    "const a = _css([`color: red;`]\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifyModule("a.js", []byte(tt.code))
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrVerify)
			assert.Contains(t, err.Error(), "a.js:")
		})
	}
}
