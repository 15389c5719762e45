package debug

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
)

type debug struct {
	Decode  bool
	Encode  bool
	Persist bool
	Scan    bool
	Capture bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("VGI_DEBUG_DECODE")
	d.Encode = boolEnv("VGI_DEBUG_ENCODE")
	d.Persist = boolEnv("VGI_DEBUG_PERSIST")
	d.Scan = boolEnv("VGI_DEBUG_SCAN")
	d.Capture = boolEnv("VGI_DEBUG_CAPTURE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Encode() bool {
	return d.Encode
}
func Persist() bool {
	return d.Persist
}
func Scan() bool {
	return d.Scan
}
func Capture() bool {
	return d.Capture
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
