// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Manual test binary: serves a directory over HTTP with all response
// bodies sharing one outbound bandwidth budget. Useful for eyeballing
// the pacing with curl against large files.
package main

import (
	"flag"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/go-core-stack/throttle/throttle"
	"github.com/go-core-stack/throttle/utils"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dir := flag.String("dir", ".", "directory to serve")
	rate := flag.Int64("rate", 256*1024,
		"aggregate download budget in bytes per second, 0 for unlimited")
	flag.Parse()

	grp, err := throttle.NewGroup(throttle.Options{
		BytesPerSecond: utils.Pointer(*rate),
	})
	if err != nil {
		log.WithError(err).Fatal("invalid throttle configuration")
	}
	defer grp.Destroy()

	fs := http.FileServer(http.Dir(*dir))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw, err := grp.WrapResponseWriter(r.Context(), w)
		if err != nil {
			log.WithError(err).Error("failed to wrap response writer")
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		defer func() {
			if err := tw.Close(); err != nil && r.Context().Err() == nil {
				log.WithError(err).WithField("path", r.URL.Path).
					Warn("response delivery interrupted")
			}
		}()
		fs.ServeHTTP(tw, r)
	})

	log.WithFields(log.Fields{
		"addr": *addr,
		"dir":  *dir,
		"rate": *rate,
	}).Info("serving throttled downloads")
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
