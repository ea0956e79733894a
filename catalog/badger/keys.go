package badger

import (
	"fmt"
	"strings"

	"github.com/astrodine/menusearch/core"
)

// Key prefixes for different data types
const (
	dishRecordPrefix = "dishrec"
	dishNamePrefix   = "dishname"
)

// makeDishRecordKey generates a key for a dish record by ID.
func makeDishRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", dishRecordPrefix, id))
}

// makeDishNameKey generates a key for the name index. Names are folded to
// lower case so lookups are case-insensitive.
func makeDishNameKey(name string) []byte {
	return []byte(dishNamePrefix + ":" + strings.ToLower(strings.TrimSpace(name)))
}
