/*
DESCRIPTION
  HTTP helpers shared by the frontend services.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  This is free software: you can redistribute it and/or modify it
  under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.

  It is distributed in the hope that it will be useful,
  but WITHOUT ANY WARRANTY; without even the implied warranty of
  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
  GNU General Public License for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt. If not, see http://www.gnu.org/licenses/.
*/

// Package utils provides HTTP helpers shared by the frontend services.
package utils

import (
	"net/http"
)

// RecoveryCallback is called with the recovered value when a handler panics.
// It returns true if it has written a response, otherwise the recovering
// handler responds with a 500.
type RecoveryCallback func(w http.ResponseWriter, err any) bool

// NewRecoveryHandler returns a handler that calls h and recovers from any
// panic raised while doing so, passing the recovered value to callback.
// http.ErrAbortHandler is re-panicked so net/http can abort the response.
func NewRecoveryHandler(h http.Handler, callback RecoveryCallback) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}
			if callback != nil && callback(w, err) {
				return
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()
		h.ServeHTTP(w, r)
	})
}
