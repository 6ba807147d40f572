// Command bitfieldgen generates typed accessors for @bitfield record types.
//
//	bitfieldgen [--verbose] generate [--suffix _bitfield.go] FILE...
//	bitfieldgen describe FILE...
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
