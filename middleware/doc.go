// Package middleware provides net/http middleware consuming the session
// state, most importantly the route guard that keeps protected screens
// behind an authenticated session.
package middleware
