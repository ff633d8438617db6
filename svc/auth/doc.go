// Package auth registers users and manages their token sessions.
//
// Service.Login decodes an HTTP Basic credential, verifies it against the
// stored bcrypt digest and issues a session token through session.Manager.
// Tokens resolve to a user id until they expire or Logout revokes them.
//
// Registration enqueues a WelcomeJob; WelcomeProcessor consumes it on the
// worker and sends the welcome email.
package auth
