package lib

import (
	"fmt"
	"log"
)

// Assert stops the process when the invariant does not hold.
// The params may be:
// - error
// - bool, string, args...
func Assert(params ...interface{}) {
	cond := params[0]
	if cond == nil {
		return
	}

	switch v := cond.(type) {
	case error:
		log.Fatal(v)
	case bool:
		if v {
			return
		}
		msg := "assertion failed"
		if len(params) > 1 {
			msg = fmt.Sprintf(params[1].(string), params[2:]...)
		}
		log.Fatal(msg)
	default:
		panic(cond)
	}
}
