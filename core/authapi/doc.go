// Package authapi is the thin REST client for the scheduling platform's
// authentication endpoints: login, registration, credential refresh and
// logout.
//
// It performs no session management itself. Lifecycle decisions (what a
// rejected refresh means, when to clear stored credentials) belong to
// authflow; this package only speaks the wire protocol and classifies
// failures into *apierror.APIError (the server answered) versus
// ErrUnavailable (it did not).
package authapi
