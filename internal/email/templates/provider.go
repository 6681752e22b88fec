// Package templates composes the transactional emails sent by Dub.
package templates

import (
	"errors"
	"fmt"
)

// ErrInvalidProvider is returned when an import provider label is not recognized.
var ErrInvalidProvider = errors.New("invalid import provider")

// Provider is the source a link import was run from.
type Provider string

const (
	ProviderCSV       Provider = "CSV"
	ProviderBitly     Provider = "Bitly"
	ProviderShortIO   Provider = "Short.io"
	ProviderRebrandly Provider = "Rebrandly"
)

var providers = []Provider{ProviderCSV, ProviderBitly, ProviderShortIO, ProviderRebrandly}

// Providers lists every supported provider.
func Providers() []Provider {
	return append([]Provider(nil), providers...)
}

// ParseProvider maps a label to a Provider. An empty label yields ProviderCSV.
func ParseProvider(s string) (Provider, error) {
	if s == "" {
		return ProviderCSV, nil
	}
	for _, p := range providers {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidProvider, s)
}

func (p Provider) String() string {
	return string(p)
}
