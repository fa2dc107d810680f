package host

import (
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// DefaultMaxCharacterLength defines the default maximum character length used
// in validation of identifiers including the client, connection, port and
// channel identifiers.
const DefaultMaxCharacterLength = 128

// DefaultMinPortCharacterLength defines the minimum length of a port identifier.
const DefaultMinPortCharacterLength = 2

// portSpecialChars are the non-alphanumeric characters a port identifier may contain.
const portSpecialChars = "._+-#[]<>"

// ValidateFn function type to validate path and identifier bytestrings
type ValidateFn func(string) error

// lowerIdentifierValidator checks an identifier of the form ^[a-z0-9][a-z0-9-]*[a-z0-9]$.
// A leading digit is accepted so that ICS-02 client types such as "07-tendermint" stay valid.
func lowerIdentifierValidator(id string) error {
	if strings.TrimSpace(id) == "" {
		return sdkerrors.Wrap(ErrInvalidID, "identifier cannot be blank")
	}
	if len(id) > DefaultMaxCharacterLength {
		return sdkerrors.Wrapf(ErrInvalidID, "identifier %s has invalid length: %d, must be between 1-%d characters", id, len(id), DefaultMaxCharacterLength)
	}
	if first := id[0]; !isLower(first) && !isDigit(first) {
		return sdkerrors.Wrapf(ErrInvalidID, "identifier %s must start with a lowercase letter or a digit", id)
	}
	if last := id[len(id)-1]; !isLower(last) && !isDigit(last) {
		return sdkerrors.Wrapf(ErrInvalidID, "identifier %s must end with a lowercase letter or a digit", id)
	}
	for i := 1; i < len(id)-1; i++ {
		c := id[i]
		if !isLower(c) && !isDigit(c) && c != '-' {
			return sdkerrors.Wrapf(ErrInvalidID, "identifier %s must contain only lowercase alphanumeric characters or '-'", id)
		}
	}
	return nil
}

// ClientIdentifierValidator is the default validator function for Client identifiers.
func ClientIdentifierValidator(id string) error {
	return lowerIdentifierValidator(id)
}

// ClientTypeValidator validates a light client type. Client types share the
// client identifier grammar so that generated identifiers stay valid.
func ClientTypeValidator(clientType string) error {
	return lowerIdentifierValidator(clientType)
}

// ConnectionIdentifierValidator is the default validator function for Connection identifiers.
func ConnectionIdentifierValidator(id string) error {
	return lowerIdentifierValidator(id)
}

// ChannelIdentifierValidator is the default validator function for Channel identifiers.
func ChannelIdentifierValidator(id string) error {
	return lowerIdentifierValidator(id)
}

// PortIdentifierValidator is the default validator function for Port identifiers.
// A port identifier is 2 to 128 characters of alphanumerics or one of
// '.', '_', '+', '-', '#', '[', ']', '<', '>'.
func PortIdentifierValidator(id string) error {
	if strings.TrimSpace(id) == "" {
		return sdkerrors.Wrap(ErrInvalidID, "identifier cannot be blank")
	}
	if len(id) < DefaultMinPortCharacterLength || len(id) > DefaultMaxCharacterLength {
		return sdkerrors.Wrapf(ErrInvalidID, "identifier %s has invalid length: %d, must be between %d-%d characters", id, len(id), DefaultMinPortCharacterLength, DefaultMaxCharacterLength)
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if isLower(c) || isUpper(c) || isDigit(c) || strings.IndexByte(portSpecialChars, c) >= 0 {
			continue
		}
		return sdkerrors.Wrapf(ErrInvalidID, "identifier %s must contain only alphanumeric or the following characters: '.', '_', '+', '-', '#', '[', ']', '<', '>'", id)
	}
	return nil
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
