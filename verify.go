package cssmacro

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// ErrVerify is returned when an expanded module fails to parse
var ErrVerify = errors.New("expanded module does not parse")

// verifyModule parses code with esbuild's JSX loader, which accepts every
// module the macro pass reads
func verifyModule(path string, code []byte) error {
	result := api.Transform(string(code), api.TransformOptions{
		Loader:     api.LoaderJSX,
		Sourcefile: path,
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}

	var msgs []string
	for _, msg := range result.Errors {
		if loc := msg.Location; loc != nil {
			msgs = append(msgs, fmt.Sprintf("%s:%d:%d: %s", loc.File, loc.Line, loc.Column+1, msg.Text))
			continue
		}
		msgs = append(msgs, msg.Text)
	}
	return fmt.Errorf("%w:\n%s", ErrVerify, strings.Join(msgs, "\n"))
}
