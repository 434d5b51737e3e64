package pathres

import "os"

// Env abstracts environment access so resolution stays deterministic
// under test.
type Env interface {
	Get(name string) (string, bool)
	Home() (string, error)
}

var osLookupEnv = os.LookupEnv
var osUserHomeDir = os.UserHomeDir

// OSEnv reads from the process environment.
type OSEnv struct{}

func (OSEnv) Get(name string) (string, bool) {
	return osLookupEnv(name)
}

func (OSEnv) Home() (string, error) {
	return osUserHomeDir()
}
