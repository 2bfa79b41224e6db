//go:build gojson

package statecanon_test

import (
	"github.com/reoring/statecanon"
	drv "github.com/reoring/statecanon/source/gojson"
)

func init() {
	statecanon.SetJSONDriver(drv.Driver())
}
