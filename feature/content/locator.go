package content

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultProtocol is the locator protocol tag used when none is configured.
	DefaultProtocol = "store"
	// ProtocolDelimiter separates the protocol tag from the relative path.
	ProtocolDelimiter = "://"
	// LocatorExtension is appended to every generated locator.
	LocatorExtension = ".bin"
)

// now is the clock used by NewLocator. Overridden in tests.
var now = time.Now

// NewLocator returns a fresh locator of the form
// <protocol>://<year>/<month>/<day>/<hour>/<minute>/<uuid>.bin.
// Uniqueness comes from the random UUID alone.
func NewLocator(protocol string) string {
	t := now()
	var sb strings.Builder
	sb.Grow(len(protocol) + 64)
	sb.WriteString(protocol)
	sb.WriteString(ProtocolDelimiter)
	for _, part := range []int{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute()} {
		sb.WriteString(strconv.Itoa(part))
		sb.WriteByte('/')
	}
	sb.WriteString(uuid.NewString())
	sb.WriteString(LocatorExtension)
	return sb.String()
}

// SplitLocator splits a locator into its protocol tag and relative path.
// A locator without a delimiter has an empty protocol.
func SplitLocator(locator string) (protocol, relativePath string) {
	protocol, relativePath, found := strings.Cut(locator, ProtocolDelimiter)
	if !found {
		return "", locator
	}
	return protocol, relativePath
}

// KeyMapper maps locators to object keys. It is pure and safe for concurrent use.
type KeyMapper struct {
	protocol      string
	rootDirectory string
	mode          KeyMode
}

// NewKeyMapper creates a mapper for the given protocol and root directory.
// Leading and trailing slashes of rootDirectory are dropped.
func NewKeyMapper(protocol, rootDirectory string, mode KeyMode) *KeyMapper {
	if protocol == "" {
		protocol = DefaultProtocol
	}
	if mode == "" {
		mode = KeyModePrefixed
	}
	return &KeyMapper{
		protocol:      protocol,
		rootDirectory: strings.Trim(rootDirectory, "/"),
		mode:          mode,
	}
}

// Protocol returns the accepted protocol tag.
func (m *KeyMapper) Protocol() string {
	return m.protocol
}

// RootDirectory returns the normalized root directory.
func (m *KeyMapper) RootDirectory() string {
	return m.rootDirectory
}

// Resolve returns the object key for locator.
func (m *KeyMapper) Resolve(locator string) (string, error) {
	protocol, rel := SplitLocator(locator)
	if protocol != m.protocol {
		return "", fmt.Errorf("%w: %q in %q", ErrUnsupportedProtocol, protocol, locator)
	}
	if rel == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocator, locator)
	}

	if m.mode == KeyModeLegacy {
		return locator, nil
	}
	if m.rootDirectory == "" {
		return rel, nil
	}
	return m.rootDirectory + "/" + rel, nil
}
