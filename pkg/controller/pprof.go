package controller

import (
	"net/http"
	"net/http/pprof"
	"strings"
)

// PprofMux returns a mux serving net/http/pprof under prefix (for example
// "/debug/pprof"). Paths are registered in full because pprof.Index resolves
// named profiles from the "/debug/pprof/" path.
func PprofMux(prefix string) *http.ServeMux {
	prefix = strings.TrimSuffix(prefix, "/")
	mux := http.NewServeMux()

	mux.HandleFunc(prefix+"/", pprof.Index)
	mux.HandleFunc(prefix+"/cmdline", pprof.Cmdline)
	mux.HandleFunc(prefix+"/profile", pprof.Profile)
	mux.HandleFunc(prefix+"/symbol", pprof.Symbol)
	mux.HandleFunc(prefix+"/trace", pprof.Trace)

	return mux
}
