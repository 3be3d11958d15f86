package dbg

import (
	"strings"
	"sync"
	"unicode"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts arbitrary comparable values into random readable names, which
// makes orbits and bigons easy to tell apart in logs. The memo only grows, so
// only call Name from code paths that are already logging.

var (
	mu   sync.Mutex
	memo = make(map[interface{}]string)
)

func init() {
	// Names are handed out in order of demand, so the same name does not refer
	// to the same value between runs.
	petname.NonDeterministicMode()
}

// Name returns a readable name for obj, stable within the process. obj must be
// comparable. A nil value yields "Ø".
func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}

	mu.Lock()
	defer mu.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := title(petname.Adjective()) + title(petname.Name())
	memo[obj] = r
	return r
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.TrimFunc(s[1:], unicode.IsSpace)
}
