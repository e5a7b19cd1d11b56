package taskwake

import (
	"runtime"
)

// goid returns the id of the calling goroutine, parsed from the header line
// runtime.Stack writes: "goroutine 123 [running]:".
func goid() TaskID {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	const prefix = "goroutine "
	if len(b) < len(prefix) || string(b[:len(prefix)]) != prefix {
		panic("taskwake: unexpected stack header")
	}
	var id TaskID
	for _, c := range b[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + TaskID(c-'0')
	}
	if id == 0 {
		panic("taskwake: unexpected stack header")
	}
	return id
}
