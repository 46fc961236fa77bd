// Command phones serves the phone inventory manager.
package main

import (
	"github.com/trezcool/tally/apps/api"
	dig_container "github.com/trezcool/tally/apps/api/di/dig"
)

func main() {
	api.Serve(dig_container.Phones)
}
