// Package translate formats user visible LS8 messages for the host locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var (
	printer *message.Printer
	once    sync.Once
)

// fallback is used when the host reports no usable locale.
const fallback = "en-US"

func setup() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("ls8: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{fallback}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	once.Do(setup)
	return printer.Sprintf(key, args...)
}
