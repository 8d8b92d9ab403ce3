// Package inkview binds the PocketBook inkview firmware library.
//
// Constants from inkview.h are generated into zconst.go as typed
// enumerations (Event, Key, Icon, Button, Request, Dither) and the PanelType
// bit set. Events from the native run loop reach Go through a Bridge:
//
//	err := inkview.Main(inkview.HandlerFunc(func(ev inkview.Event, p1, p2 int32) int32 {
//		switch ev {
//		case inkview.EventShow:
//			inkview.ClearScreen()
//			inkview.DrawString(10, 10, "hello")
//			inkview.FullUpdate()
//		case inkview.EventKeypress:
//			if inkview.Key(p1) == inkview.KeyBack {
//				inkview.Exit()
//			}
//		}
//		return 0
//	}))
//
// On linux/arm with cgo the calls go straight to libinkview. Every other
// target builds a simulator: an in-memory framebuffer with the same drawing
// semantics and a terminal run loop (tcell) that delivers init, show, key,
// pointer and exit events. Set INKVIEW_SIM_HEADLESS=1 to run the loop
// without a terminal.
//
// All drawing and update functions must be called from the goroutine
// running Main, normally from inside the event handler.
package inkview

//go:generate go run inkview/cmd/ivgen generate --config ivgen.yaml
