package core

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/go-drift/pico/pkg/errors"
)

// Disconnect tears down what a connect procedure set up beyond its tracked
// subscriptions. A nil Disconnect means no explicit teardown.
type Disconnect func()

// ConnectFunc binds behavior to a freshly connected element. It runs
// synchronously; subscriptions made through s during the call are released
// automatically when the element disconnects.
type ConnectFunc func(refs Refs, s *Store) Disconnect

// Components maps component names to connect procedures.
type Components map[string]ConnectFunc

// Definition is a registered component.
type Definition struct {
	// Name is the custom element name.
	Name string
	// Connect is the connect procedure.
	Connect ConnectFunc
	// Extends names the native element kind the component customizes, or "".
	Extends string
}

// DefineOption configures a definition.
type DefineOption func(*Definition)

// Extends makes the component customize a native element kind. Such a
// component connects to elements like <button is="x-button">.
func Extends(tag string) DefineOption {
	return func(d *Definition) {
		d.Extends = strings.ToLower(tag)
	}
}

var reservedNames = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// ValidName reports whether name is a valid custom element name: it starts
// with a lowercase ASCII letter, contains a hyphen, has no uppercase ASCII
// letters, uses only name characters and is not reserved.
func ValidName(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	if !strings.Contains(name, "-") || reservedNames[name] {
		return false
	}
	for _, r := range name {
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

func isNameChar(r rune) bool {
	switch {
	case r == '-' || r == '.' || r == '_':
		return true
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z':
		return true
	case r == 0xB7:
		return true
	case r >= 0xC0 && r <= 0xD6, r >= 0xD8 && r <= 0xF6, r >= 0xF8 && r <= 0x37D:
		return true
	case r >= 0x37F && r <= 0x1FFF, r >= 0x200C && r <= 0x200D, r >= 0x203F && r <= 0x2040:
		return true
	case r >= 0x2070 && r <= 0x218F, r >= 0x2C00 && r <= 0x2FEF, r >= 0x3001 && r <= 0xD7FF:
		return true
	case r >= 0xF900 && r <= 0xFDCF, r >= 0xFDF0 && r <= 0xFFFD, r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}

func newDefinition(name string, connect ConnectFunc, opts []DefineOption) (*Definition, error) {
	def := &Definition{Name: norm.NFC.String(name), Connect: connect}
	for _, opt := range opts {
		opt(def)
	}
	switch {
	case connect == nil:
		return def, errors.ErrNilConnect
	case !ValidName(def.Name):
		return def, fmt.Errorf("%w: %q", errors.ErrInvalidName, def.Name)
	case def.Extends != "" && !validExtends(def.Extends):
		return def, fmt.Errorf("%w: cannot extend %q", errors.ErrInvalidName, def.Extends)
	}
	return def, nil
}

// validExtends accepts native element names only.
func validExtends(tag string) bool {
	if strings.Contains(tag, "-") {
		return false
	}
	for _, r := range tag {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
