// Command grades serves the student grade tracker.
package main

import (
	"github.com/trezcool/tally/apps/api"
	dig_container "github.com/trezcool/tally/apps/api/di/dig"
)

func main() {
	api.Serve(dig_container.Grades)
}
