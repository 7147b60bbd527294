// compileinfoprint is imported for the side effect of logging the compileinfo
// to stderr when a command starts.
package compileinfoprint

import "github.com/carbocation/gwasplot/compileinfo"

func init() {
	compileinfo.Log()
}
