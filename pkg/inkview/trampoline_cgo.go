//go:build linux && arm && cgo

package inkview

import "C"

// ivTrampoline is the iv_handler installed by runMain and SendEvent. A file
// with //export may only declare, not define, C code in its preamble, so
// it lives apart from native_cgo.go.
//
//export ivTrampoline
func ivTrampoline(event, par1, par2 C.int) C.int {
	b := active.Load()
	if b == nil {
		return C.int(ResultNoHandler)
	}
	return C.int(b.Trampoline(int32(event), int32(par1), int32(par2)))
}
